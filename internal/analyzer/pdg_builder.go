package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/csim/internal/parser"
)

// PDGBuilder builds a program dependence graph from a statement tree.
//
// The builder walks the tree once in execution order, emitting one node per
// modeled construct. Every node creation wires a control edge from the node
// that was current immediately before it; data edges connect the most recent
// assignment of a variable to later uses of the same name. Constructs the
// builder does not model (loops, switch, goto) produce no node and are not
// descended into.
//
// A builder instance owns its traversal state and must not be shared between
// concurrent Build calls. State is reset on every Build.
type PDGBuilder struct {
	graph *PDG

	// current is the most recently created node; the next node created
	// receives a control edge from it.
	current *PDGNode

	// lastAssign maps a variable name to the node that most recently
	// assigned it. Last write wins; superseded definitions are not linked.
	lastAssign map[string]*PDGNode
}

// NewPDGBuilder creates a new PDG builder
func NewPDGBuilder() *PDGBuilder {
	return &PDGBuilder{}
}

// Build constructs a PDG from the given statement tree. Unsupported node
// types are skipped without error; Build fails only on a nil root.
func (b *PDGBuilder) Build(root *parser.Node) (*PDG, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot build PDG from nil AST")
	}

	b.graph = NewPDG()
	b.current = nil
	b.lastAssign = make(map[string]*PDGNode)

	b.visitStmt(root)
	return b.graph, nil
}

// addNode creates a node, wires the control edge from the previous current
// node, and advances the cursor. This is the single mechanism producing the
// control-edge skeleton and is not skipped for any node kind.
func (b *PDGBuilder) addNode(label string, kind PDGNodeKind) *PDGNode {
	node := b.graph.AddNode(label, kind)
	if b.current != nil {
		b.graph.AddEdge(b.current.ID, node.ID, PDGEdgeControl)
	}
	b.current = node
	return node
}

func (b *PDGBuilder) visitStmt(stmt *parser.Node) {
	if stmt == nil {
		return
	}

	switch stmt.Type {
	case parser.NodeTranslationUnit, parser.NodeCompound, parser.NodeDeclGroup:
		for _, s := range stmt.Body {
			b.visitStmt(s)
		}

	case parser.NodeFunctionDef:
		b.addNode("Decl "+stmt.Name, PDGNodeDecl)
		for _, s := range stmt.Body {
			b.visitStmt(s)
		}

	case parser.NodeDecl:
		b.visitDecl(stmt)

	case parser.NodeAssign:
		b.visitAssign(stmt)

	case parser.NodeCall:
		b.emitCall(stmt)

	case parser.NodeIf:
		b.visitIf(stmt)

	case parser.NodeReturn:
		b.visitReturn(stmt)

	case parser.NodeIdentifier, parser.NodeBinaryOp, parser.NodeUnaryOp:
		// Bare expression statement
		b.visitExpr(stmt)

	default:
		// Unsupported construct: no node, no descent.
	}
}

// visitDecl emits a decl node and, when an initializer is present, a separate
// assign node. Declaration initializers are rendered textually rather than
// visited, so sub-expression uses do not generate nodes here.
func (b *PDGBuilder) visitDecl(decl *parser.Node) {
	b.addNode("Decl "+decl.Name, PDGNodeDecl)

	if decl.Init == nil {
		return
	}

	var assign *PDGNode
	if decl.Init.Type == parser.NodeCall {
		call := b.emitCall(decl.Init)
		assign = b.addNode(decl.Name+" = [call]", PDGNodeAssign)
		// The assignment's value came from the call
		b.graph.AddEdge(assign.ID, call.ID, PDGEdgeData)
	} else {
		assign = b.addNode(decl.Name+" = "+b.renderExpr(decl.Init), PDGNodeAssign)
	}
	b.lastAssign[decl.Name] = assign
}

// visitAssign emits an assign node, records the definition, then scans the
// right-hand side for identifier uses. The map update happens before the
// scan so a self-referential RHS sees its own just-created entry.
func (b *PDGBuilder) visitAssign(stmt *parser.Node) {
	lhs := b.renderExpr(stmt.Left)

	var assign *PDGNode
	if stmt.Right != nil && stmt.Right.Type == parser.NodeCall {
		call := b.emitCall(stmt.Right)
		assign = b.addNode(fmt.Sprintf("%s %s [call]", lhs, stmt.Op), PDGNodeAssign)
		b.graph.AddEdge(assign.ID, call.ID, PDGEdgeData)
	} else {
		assign = b.addNode(fmt.Sprintf("%s %s %s", lhs, stmt.Op, b.renderExpr(stmt.Right)), PDGNodeAssign)
	}
	b.lastAssign[lhs] = assign

	if stmt.Right != nil && stmt.Right.Type == parser.NodeCall {
		// The call node itself was already emitted; scan its callee and
		// argument expressions for uses.
		b.visitExpr(stmt.Right.Callee)
		for _, arg := range stmt.Right.Args {
			b.visitExpr(arg)
		}
	} else {
		b.visitExpr(stmt.Right)
	}
}

// emitCall creates a func_call node. Arguments are rendered textually only;
// they are not visited for node creation.
func (b *PDGBuilder) emitCall(call *parser.Node) *PDGNode {
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = b.renderExpr(arg)
	}
	label := fmt.Sprintf("Call %s(%s)", b.renderExpr(call.Callee), strings.Join(args, ", "))
	return b.addNode(label, PDGNodeFuncCall)
}

// visitIf emits the condition node and processes each branch with a saved
// cursor: the branch chains off the if node, a control edge links the if node
// to the branch's last node, and the cursor is restored afterwards. The
// branches therefore never chain off each other, and statements following the
// conditional link to the pre-conditional node.
func (b *PDGBuilder) visitIf(stmt *parser.Node) {
	cond := b.addNode(fmt.Sprintf("If %s?", b.renderExpr(stmt.Test)), PDGNodeIf)

	if len(stmt.Body) > 0 {
		old := b.current
		b.current = cond
		for _, s := range stmt.Body {
			b.visitStmt(s)
		}
		b.graph.AddEdge(cond.ID, b.current.ID, PDGEdgeControl)
		b.current = old
	}
	if len(stmt.Orelse) > 0 {
		old := b.current
		b.current = cond
		for _, s := range stmt.Orelse {
			b.visitStmt(s)
		}
		b.graph.AddEdge(cond.ID, b.current.ID, PDGEdgeControl)
		b.current = old
	}
}

func (b *PDGBuilder) visitReturn(stmt *parser.Node) {
	if stmt.Operand != nil {
		b.addNode("Return "+b.renderExpr(stmt.Operand), PDGNodeReturn)
		b.visitExpr(stmt.Operand)
	} else {
		b.addNode("Return", PDGNodeReturn)
	}
}

// visitExpr scans an expression tree for identifier uses and nested calls.
// An identifier whose name has a recorded definition produces a use node and
// a data edge from that definition; unknown names produce nothing.
func (b *PDGBuilder) visitExpr(expr *parser.Node) {
	if expr == nil {
		return
	}

	switch expr.Type {
	case parser.NodeIdentifier:
		if def, ok := b.lastAssign[expr.Name]; ok {
			use := b.addNode("Use "+expr.Name, PDGNodeUse)
			b.graph.AddEdge(def.ID, use.ID, PDGEdgeData)
		}

	case parser.NodeCall:
		b.emitCall(expr)

	case parser.NodeBinaryOp:
		b.visitExpr(expr.Left)
		b.visitExpr(expr.Right)

	case parser.NodeUnaryOp:
		b.visitExpr(expr.Operand)

	case parser.NodeAssign:
		// Nested assignment expression: scan both sides, no node and no
		// definition recorded.
		b.visitExpr(expr.Left)
		b.visitExpr(expr.Right)

	default:
		// Literals and unmodeled expressions produce nothing.
	}
}

// renderExpr stringifies an expression for node labels. It never creates
// graph nodes. Unrecognized expressions render as "?".
func (b *PDGBuilder) renderExpr(expr *parser.Node) string {
	if expr == nil {
		return "?"
	}

	switch expr.Type {
	case parser.NodeLiteral:
		if s, ok := expr.Value.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", expr.Value)
	case parser.NodeIdentifier:
		return expr.Name
	case parser.NodeBinaryOp:
		return fmt.Sprintf("(%s %s %s)", b.renderExpr(expr.Left), expr.Op, b.renderExpr(expr.Right))
	case parser.NodeUnaryOp:
		return expr.Op + b.renderExpr(expr.Operand)
	case parser.NodeAssign:
		return fmt.Sprintf("%s %s %s", b.renderExpr(expr.Left), expr.Op, b.renderExpr(expr.Right))
	case parser.NodeCall:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = b.renderExpr(arg)
		}
		return fmt.Sprintf("Call %s(%s)", b.renderExpr(expr.Callee), strings.Join(args, ", "))
	default:
		return "?"
	}
}
