package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// C AST node types
const (
	// Structure
	NodeTranslationUnit NodeType = "TranslationUnit"
	NodeCompound        NodeType = "Compound"
	NodeDeclGroup       NodeType = "DeclGroup"

	// Statements
	NodeFunctionDef NodeType = "FunctionDef"
	NodeDecl        NodeType = "Decl"
	NodeAssign      NodeType = "Assign"
	NodeIf          NodeType = "If"
	NodeReturn      NodeType = "Return"
	NodeWhile       NodeType = "While"
	NodeFor         NodeType = "For"
	NodeSwitch      NodeType = "Switch"
	NodeBreak       NodeType = "Break"
	NodeContinue    NodeType = "Continue"
	NodeGoto        NodeType = "Goto"

	// Expressions
	NodeCall       NodeType = "Call"
	NodeIdentifier NodeType = "Identifier"
	NodeLiteral    NodeType = "Literal"
	NodeBinaryOp   NodeType = "BinaryOp"
	NodeUnaryOp    NodeType = "UnaryOp"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node represents a typed statement-tree node built from the tree-sitter CST.
//
// Only the fields relevant to a node's type are populated; the rest stay at
// their zero values. Compound bodies (Body, Orelse, Args) are ordered slices.
type Node struct {
	Type     NodeType
	Value    interface{} // Literal text for NodeLiteral
	Location Location

	Name    string  // Declared name for NodeDecl/NodeFunctionDef, variable name for NodeIdentifier
	Init    *Node   // Initializer expression for NodeDecl
	Test    *Node   // Condition for NodeIf/NodeWhile
	Body    []*Node // Statements of compound constructs, true branch of NodeIf
	Orelse  []*Node // False branch of NodeIf
	Left    *Node   // LHS of NodeAssign/NodeBinaryOp
	Right   *Node   // RHS of NodeAssign/NodeBinaryOp
	Op      string  // Operator for NodeAssign/NodeBinaryOp/NodeUnaryOp
	Operand *Node   // Operand of NodeUnaryOp
	Callee  *Node   // Callee expression of NodeCall
	Args    []*Node // Arguments of NodeCall
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type: nodeType,
	}
}

// AddToBody appends a statement to the node's body
func (n *Node) AddToBody(stmt *Node) {
	if stmt != nil {
		n.Body = append(n.Body, stmt)
	}
}

// IsStatement returns true if the node is a statement
func (n *Node) IsStatement() bool {
	switch n.Type {
	case NodeFunctionDef, NodeDecl, NodeDeclGroup, NodeAssign, NodeIf, NodeReturn,
		NodeWhile, NodeFor, NodeSwitch, NodeBreak, NodeContinue, NodeGoto, NodeCompound:
		return true
	default:
		return false
	}
}

// IsExpression returns true if the node is an expression
func (n *Node) IsExpression() bool {
	switch n.Type {
	case NodeCall, NodeIdentifier, NodeLiteral, NodeBinaryOp, NodeUnaryOp:
		return true
	default:
		return false
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Type, n.Name)
	}
	if n.Value != nil {
		return fmt.Sprintf("%s(%v)", n.Type, n.Value)
	}
	return string(n.Type)
}
