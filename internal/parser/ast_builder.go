package parser

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder converts tree-sitter parse trees to the internal AST representation
type ASTBuilder struct {
	source []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(source []byte) *ASTBuilder {
	return &ASTBuilder{
		source: source,
	}
}

// Build converts a tree-sitter tree to the internal AST
func (b *ASTBuilder) Build(tree *sitter.Tree) (*Node, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("root node is nil")
	}

	return b.buildNode(rootNode), nil
}

// buildNode recursively builds AST nodes from tree-sitter nodes
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "translation_unit":
		return b.buildTranslationUnit(tsNode)
	case "function_definition":
		return b.buildFunctionDef(tsNode)
	case "compound_statement":
		return b.buildCompound(tsNode)
	case "declaration":
		return b.buildDeclaration(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "return_statement":
		return b.buildReturnStatement(tsNode)
	case "while_statement", "do_statement":
		return b.buildLoop(tsNode, NodeWhile)
	case "for_statement":
		return b.buildLoop(tsNode, NodeFor)
	case "switch_statement":
		return b.buildSimple(tsNode, NodeSwitch)
	case "break_statement":
		return b.buildSimple(tsNode, NodeBreak)
	case "continue_statement":
		return b.buildSimple(tsNode, NodeContinue)
	case "goto_statement":
		return b.buildSimple(tsNode, NodeGoto)

	// Expressions
	case "assignment_expression":
		return b.buildAssignment(tsNode)
	case "call_expression":
		return b.buildCall(tsNode)
	case "binary_expression":
		return b.buildBinaryOp(tsNode)
	case "unary_expression", "pointer_expression":
		return b.buildUnaryOp(tsNode)
	case "update_expression":
		return b.buildUpdateExpression(tsNode)
	case "parenthesized_expression":
		return b.buildNode(b.firstNamedChild(tsNode))
	case "identifier":
		return b.buildIdentifier(tsNode)
	case "number_literal", "string_literal", "char_literal", "true", "false", "null":
		return b.buildLiteral(tsNode)

	case "comment", "preproc_include", "preproc_def", "preproc_ifdef":
		return nil

	default:
		// Unhandled constructs keep their raw tree-sitter type so downstream
		// consumers can recognize and skip them.
		node := NewNode(NodeType(tsNode.Type()))
		node.Location = b.getLocation(tsNode)
		return node
	}
}

func (b *ASTBuilder) buildTranslationUnit(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTranslationUnit)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		node.AddToBody(b.buildNode(tsNode.NamedChild(i)))
	}
	return node
}

func (b *ASTBuilder) buildFunctionDef(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFunctionDef)
	node.Location = b.getLocation(tsNode)
	node.Name = b.declaratorName(tsNode.ChildByFieldName("declarator"))

	if body := tsNode.ChildByFieldName("body"); body != nil {
		node.Body = b.statementList(body)
	}
	return node
}

func (b *ASTBuilder) buildCompound(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCompound)
	node.Location = b.getLocation(tsNode)
	node.Body = b.statementList(tsNode)
	return node
}

// buildDeclaration handles C declarations. A declaration with several
// comma-separated declarators is split into one NodeDecl per declarator,
// wrapped in a NodeDeclGroup so the result is still a single statement.
func (b *ASTBuilder) buildDeclaration(tsNode *sitter.Node) *Node {
	var decls []*Node

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		switch child.Type() {
		case "init_declarator":
			decl := NewNode(NodeDecl)
			decl.Location = b.getLocation(child)
			decl.Name = b.declaratorName(child.ChildByFieldName("declarator"))
			decl.Init = b.buildNode(child.ChildByFieldName("value"))
			decls = append(decls, decl)
		case "identifier", "pointer_declarator", "array_declarator", "function_declarator":
			decl := NewNode(NodeDecl)
			decl.Location = b.getLocation(child)
			decl.Name = b.declaratorName(child)
			decls = append(decls, decl)
		}
	}

	if len(decls) == 1 {
		return decls[0]
	}

	group := NewNode(NodeDeclGroup)
	group.Location = b.getLocation(tsNode)
	group.Body = decls
	return group
}

func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	return b.buildNode(b.firstNamedChild(tsNode))
}

func (b *ASTBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.getLocation(tsNode)
	node.Test = b.buildNode(tsNode.ChildByFieldName("condition"))

	if consequence := tsNode.ChildByFieldName("consequence"); consequence != nil {
		node.Body = b.statementList(consequence)
	}
	if alternative := tsNode.ChildByFieldName("alternative"); alternative != nil {
		// Newer C grammars wrap the else branch in an else_clause node.
		if alternative.Type() == "else_clause" {
			alternative = b.firstNamedChild(alternative)
		}
		node.Orelse = b.statementList(alternative)
	}
	return node
}

func (b *ASTBuilder) buildReturnStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeReturn)
	node.Location = b.getLocation(tsNode)
	if expr := b.firstNamedChild(tsNode); expr != nil {
		node.Operand = b.buildNode(expr)
	}
	return node
}

func (b *ASTBuilder) buildLoop(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	node.Test = b.buildNode(tsNode.ChildByFieldName("condition"))
	if body := tsNode.ChildByFieldName("body"); body != nil {
		node.Body = b.statementList(body)
	}
	return node
}

func (b *ASTBuilder) buildSimple(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	return node
}

func (b *ASTBuilder) buildAssignment(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAssign)
	node.Location = b.getLocation(tsNode)
	node.Left = b.buildNode(tsNode.ChildByFieldName("left"))
	node.Right = b.buildNode(tsNode.ChildByFieldName("right"))
	node.Op = b.operatorText(tsNode, "=")
	return node
}

func (b *ASTBuilder) buildCall(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.getLocation(tsNode)
	node.Callee = b.buildNode(tsNode.ChildByFieldName("function"))

	if args := tsNode.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if arg := b.buildNode(args.NamedChild(i)); arg != nil {
				node.Args = append(node.Args, arg)
			}
		}
	}
	return node
}

func (b *ASTBuilder) buildBinaryOp(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBinaryOp)
	node.Location = b.getLocation(tsNode)
	node.Left = b.buildNode(tsNode.ChildByFieldName("left"))
	node.Right = b.buildNode(tsNode.ChildByFieldName("right"))
	node.Op = b.operatorText(tsNode, "?")
	return node
}

func (b *ASTBuilder) buildUnaryOp(tsNode *sitter.Node) *Node {
	node := NewNode(NodeUnaryOp)
	node.Location = b.getLocation(tsNode)
	node.Op = b.operatorText(tsNode, "?")
	node.Operand = b.buildNode(tsNode.ChildByFieldName("argument"))
	return node
}

func (b *ASTBuilder) buildUpdateExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeUnaryOp)
	node.Location = b.getLocation(tsNode)
	node.Op = b.operatorText(tsNode, "++")
	node.Operand = b.buildNode(tsNode.ChildByFieldName("argument"))
	return node
}

func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = b.nodeText(tsNode)
	return node
}

func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeLiteral)
	node.Location = b.getLocation(tsNode)
	node.Value = b.nodeText(tsNode)
	return node
}

// statementList flattens a compound statement (or a single statement) into an
// ordered slice of AST statements.
func (b *ASTBuilder) statementList(tsNode *sitter.Node) []*Node {
	if tsNode == nil {
		return nil
	}

	if tsNode.Type() != "compound_statement" {
		if stmt := b.buildNode(tsNode); stmt != nil {
			return []*Node{stmt}
		}
		return nil
	}

	var stmts []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		if stmt := b.buildNode(tsNode.NamedChild(i)); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// declaratorName digs through pointer/array/function declarators to the
// declared identifier.
func (b *ASTBuilder) declaratorName(tsNode *sitter.Node) string {
	for tsNode != nil {
		switch tsNode.Type() {
		case "identifier", "field_identifier":
			return b.nodeText(tsNode)
		case "pointer_declarator", "array_declarator", "function_declarator", "parenthesized_declarator":
			if inner := tsNode.ChildByFieldName("declarator"); inner != nil {
				tsNode = inner
				continue
			}
			tsNode = b.firstNamedChild(tsNode)
		default:
			return b.nodeText(tsNode)
		}
	}
	return ""
}

// operatorText returns the operator token text, falling back when the grammar
// exposes no operator field.
func (b *ASTBuilder) operatorText(tsNode *sitter.Node, fallback string) string {
	if op := tsNode.ChildByFieldName("operator"); op != nil {
		return b.nodeText(op)
	}
	return fallback
}

func (b *ASTBuilder) firstNamedChild(tsNode *sitter.Node) *sitter.Node {
	if tsNode == nil || tsNode.NamedChildCount() == 0 {
		return nil
	}
	return tsNode.NamedChild(0)
}

func (b *ASTBuilder) nodeText(tsNode *sitter.Node) string {
	if tsNode == nil {
		return ""
	}
	return tsNode.Content(b.source)
}

func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}
