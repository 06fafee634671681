package ast

import (
	"fmt"
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// ============= CONTROL FLOW STATEMENTS =============

// WhileStatement 表示 while 循环
type WhileStatement struct {
	BaseNode
	Test Expression  `json:"test"`
	Body []Statement `json:"body"`
}

func (w *WhileStatement) GetChildren() []Node {
	children := []Node{w.Test}
	for _, s := range w.Body {
		children = append(children, s)
	}
	return children
}

func (w *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) { ... }", w.Test.String())
}

func (w *WhileStatement) statementNode() {}

// ForStatement 表示 for 循环
type ForStatement struct {
	BaseNode
	Init   Expression  `json:"init,omitempty"`
	Test   Expression  `json:"test,omitempty"`
	Update Expression  `json:"update,omitempty"`
	Body   []Statement `json:"body"`
}

func (f *ForStatement) GetChildren() []Node {
	var children []Node
	if f.Init != nil {
		children = append(children, f.Init)
	}
	if f.Test != nil {
		children = append(children, f.Test)
	}
	if f.Update != nil {
		children = append(children, f.Update)
	}
	for _, s := range f.Body {
		children = append(children, s)
	}
	return children
}

func (f *ForStatement) String() string { return "for (...) { ... }" }

func (f *ForStatement) statementNode() {}

// ForeachStatement 表示 foreach 循环
type ForeachStatement struct {
	BaseNode
	Iterable Expression `json:"iterable"`
	Key      Expression `json:"key,omitempty"`
	Value    Expression `json:"value"`
	Body     Statement  `json:"body"`
}

func NewForeachStatement(pos lexer.Position, iterable, key, value Expression, body Statement) *ForeachStatement {
	return &ForeachStatement{
		BaseNode: BaseNode{Kind: ASTForeach, Position: pos, LineNo: uint32(pos.Line)},
		Iterable: iterable,
		Key:      key,
		Value:    value,
		Body:     body,
	}
}

func (f *ForeachStatement) GetChildren() []Node {
	children := []Node{f.Iterable}
	if f.Key != nil {
		children = append(children, f.Key)
	}
	children = append(children, f.Value)
	if f.Body != nil {
		children = append(children, f.Body)
	}
	return children
}

func (f *ForeachStatement) String() string {
	return fmt.Sprintf("foreach (%s as %s) { ... }", f.Iterable.String(), f.Value.String())
}

func (f *ForeachStatement) statementNode() {}

// BreakStatement 表示 break 语句
type BreakStatement struct {
	BaseNode
}

func NewBreakStatement(pos lexer.Position) *BreakStatement {
	return &BreakStatement{BaseNode: BaseNode{Kind: ASTBreak, Position: pos, LineNo: uint32(pos.Line)}}
}

func (b *BreakStatement) String() string { return "break;" }
func (b *BreakStatement) statementNode() {}

// ContinueStatement 表示 continue 语句
type ContinueStatement struct {
	BaseNode
}

func NewContinueStatement(pos lexer.Position) *ContinueStatement {
	return &ContinueStatement{BaseNode: BaseNode{Kind: ASTContinue, Position: pos, LineNo: uint32(pos.Line)}}
}

func (c *ContinueStatement) String() string { return "continue;" }
func (c *ContinueStatement) statementNode() {}

// DoWhileStatement 表示 do-while 循环
type DoWhileStatement struct {
	BaseNode
	Body      Statement  `json:"body"`
	Condition Expression `json:"condition"`
}

func NewDoWhileStatement(pos lexer.Position, body Statement, condition Expression) *DoWhileStatement {
	return &DoWhileStatement{
		BaseNode:  BaseNode{Kind: ASTDoWhile, Position: pos, LineNo: uint32(pos.Line)},
		Body:      body,
		Condition: condition,
	}
}

func (d *DoWhileStatement) GetChildren() []Node {
	children := []Node{}
	if d.Body != nil {
		children = append(children, d.Body)
	}
	children = append(children, d.Condition)
	return children
}

func (d *DoWhileStatement) String() string {
	return fmt.Sprintf("do { ... } while (%s);", d.Condition.String())
}

func (d *DoWhileStatement) statementNode() {}

// GotoStatement 表示 goto 语句
type GotoStatement struct {
	BaseNode
	Label Expression `json:"label"`
}

func NewGotoStatement(pos lexer.Position, label Expression) *GotoStatement {
	return &GotoStatement{BaseNode: BaseNode{Kind: ASTGoto, Position: pos, LineNo: uint32(pos.Line)}, Label: label}
}

func (g *GotoStatement) GetChildren() []Node { return []Node{g.Label} }
func (g *GotoStatement) String() string      { return fmt.Sprintf("goto %s;", g.Label.String()) }
func (g *GotoStatement) statementNode()      {}

// ============= EXCEPTION HANDLING =============

// CatchClause 表示 try 语句中的一个 catch 子句
type CatchClause struct {
	BaseNode
	Parameter Expression   `json:"parameter,omitempty"`
	Types     []Expression `json:"types"`
	Body      []Statement  `json:"body"`
}

func NewCatchClause(pos lexer.Position, parameter Expression) *CatchClause {
	return &CatchClause{BaseNode: BaseNode{Kind: ASTCatch, Position: pos, LineNo: uint32(pos.Line)}, Parameter: parameter}
}

func (c *CatchClause) GetChildren() []Node {
	var children []Node
	for _, t := range c.Types {
		children = append(children, t)
	}
	if c.Parameter != nil {
		children = append(children, c.Parameter)
	}
	for _, s := range c.Body {
		children = append(children, s)
	}
	return children
}

func (c *CatchClause) String() string { return "catch (...) { ... }" }

// TryStatement 表示 try/catch/finally 语句
type TryStatement struct {
	BaseNode
	Body         []Statement    `json:"body"`
	CatchClauses []*CatchClause `json:"catch_clauses,omitempty"`
	FinallyBlock []Statement    `json:"finally_block,omitempty"`
}

func NewTryStatement(pos lexer.Position) *TryStatement {
	return &TryStatement{BaseNode: BaseNode{Kind: ASTTry, Position: pos, LineNo: uint32(pos.Line)}}
}

func (t *TryStatement) GetChildren() []Node {
	var children []Node
	for _, s := range t.Body {
		children = append(children, s)
	}
	for _, cc := range t.CatchClauses {
		children = append(children, cc)
	}
	for _, s := range t.FinallyBlock {
		children = append(children, s)
	}
	return children
}

func (t *TryStatement) String() string { return "try { ... }" }
func (t *TryStatement) statementNode() {}

// ThrowStatement 表示 throw 语句
type ThrowStatement struct {
	BaseNode
	Argument Expression `json:"argument"`
}

func NewThrowStatement(pos lexer.Position, argument Expression) *ThrowStatement {
	return &ThrowStatement{BaseNode: BaseNode{Kind: ASTThrow, Position: pos, LineNo: uint32(pos.Line)}, Argument: argument}
}

func (t *ThrowStatement) GetChildren() []Node { return []Node{t.Argument} }
func (t *ThrowStatement) String() string      { return fmt.Sprintf("throw %s;", t.Argument.String()) }
func (t *ThrowStatement) statementNode()      {}

// ============= VARIABLE SCOPE STATEMENTS =============

// GlobalStatement 表示 global 语句
type GlobalStatement struct {
	BaseNode
	Variables []Expression `json:"variables"`
}

func NewGlobalStatement(pos lexer.Position) *GlobalStatement {
	return &GlobalStatement{BaseNode: BaseNode{Kind: ASTGlobal, Position: pos, LineNo: uint32(pos.Line)}}
}

func (g *GlobalStatement) GetChildren() []Node {
	var children []Node
	for _, v := range g.Variables {
		children = append(children, v)
	}
	return children
}

func (g *GlobalStatement) String() string { return "global ...;" }
func (g *GlobalStatement) statementNode() {}

// StaticVariable 表示静态变量声明中的一个变量
type StaticVariable struct {
	BaseNode
	Variable     Expression `json:"variable"`
	DefaultValue Expression `json:"default_value,omitempty"`
}

func NewStaticVariable(pos lexer.Position, variable, defaultValue Expression) *StaticVariable {
	return &StaticVariable{
		BaseNode:     BaseNode{Kind: ASTStatic, Position: pos, LineNo: uint32(pos.Line)},
		Variable:     variable,
		DefaultValue: defaultValue,
	}
}

func (s *StaticVariable) GetChildren() []Node {
	children := []Node{s.Variable}
	if s.DefaultValue != nil {
		children = append(children, s.DefaultValue)
	}
	return children
}

func (s *StaticVariable) String() string { return s.Variable.String() }

// StaticStatement 表示 static 局部变量声明
type StaticStatement struct {
	BaseNode
	Variables []*StaticVariable `json:"variables"`
}

func NewStaticStatement(pos lexer.Position) *StaticStatement {
	return &StaticStatement{BaseNode: BaseNode{Kind: ASTStatic, Position: pos, LineNo: uint32(pos.Line)}}
}

func (s *StaticStatement) GetChildren() []Node {
	var children []Node
	for _, v := range s.Variables {
		children = append(children, v)
	}
	return children
}

func (s *StaticStatement) String() string { return "static ...;" }
func (s *StaticStatement) statementNode() {}

// UnsetStatement 表示 unset() 语句
type UnsetStatement struct {
	BaseNode
	Variables []Expression `json:"variables"`
}

func NewUnsetStatement(pos lexer.Position) *UnsetStatement {
	return &UnsetStatement{BaseNode: BaseNode{Kind: ASTUnset, Position: pos, LineNo: uint32(pos.Line)}}
}

func (u *UnsetStatement) GetChildren() []Node {
	var children []Node
	for _, v := range u.Variables {
		children = append(children, v)
	}
	return children
}

func (u *UnsetStatement) String() string { return "unset(...);" }
func (u *UnsetStatement) statementNode() {}

// ============= OUTPUT STATEMENTS =============

// EchoStatement 表示 echo 语句
type EchoStatement struct {
	BaseNode
	Arguments []Expression `json:"arguments"`
}

func NewEchoStatement(pos lexer.Position) *EchoStatement {
	return &EchoStatement{BaseNode: BaseNode{Kind: ASTEcho, Position: pos, LineNo: uint32(pos.Line)}}
}

func (e *EchoStatement) GetChildren() []Node {
	var children []Node
	for _, a := range e.Arguments {
		children = append(children, a)
	}
	return children
}

func (e *EchoStatement) String() string { return "echo ...;" }
func (e *EchoStatement) statementNode() {}

// PrintStatement 表示语句上下文中的 print
type PrintStatement struct {
	BaseNode
	Arguments []Expression `json:"arguments"`
}

func (p *PrintStatement) GetChildren() []Node {
	var children []Node
	for _, a := range p.Arguments {
		children = append(children, a)
	}
	return children
}

func (p *PrintStatement) String() string { return "print ...;" }
func (p *PrintStatement) statementNode() {}

// ============= COMPILE-TIME DIRECTIVES =============

// HaltCompilerStatement 表示 __halt_compiler()
type HaltCompilerStatement struct {
	BaseNode
}

func (h *HaltCompilerStatement) String() string { return "__halt_compiler();" }
func (h *HaltCompilerStatement) statementNode()  {}

// DeclareStatement 表示 declare() 语句
type DeclareStatement struct {
	BaseNode
	Declarations []Expression `json:"declarations"`
	Body         []Statement  `json:"body,omitempty"`
}

func (d *DeclareStatement) GetChildren() []Node {
	var children []Node
	for _, decl := range d.Declarations {
		children = append(children, decl)
	}
	for _, s := range d.Body {
		children = append(children, s)
	}
	return children
}

func (d *DeclareStatement) String() string { return "declare(...);" }
func (d *DeclareStatement) statementNode() {}

// NamespaceStatement 表示 namespace 语句
type NamespaceStatement struct {
	BaseNode
	Name Expression  `json:"name,omitempty"`
	Body []Statement `json:"body,omitempty"`
}

func (n *NamespaceStatement) GetChildren() []Node {
	var children []Node
	if n.Name != nil {
		children = append(children, n.Name)
	}
	for _, s := range n.Body {
		children = append(children, s)
	}
	return children
}

func (n *NamespaceStatement) String() string { return "namespace ...;" }
func (n *NamespaceStatement) statementNode()  {}

// UseStatement 表示顶层的 use 语句 (命名空间导入)
type UseStatement struct {
	BaseNode
}

func (u *UseStatement) String() string { return "use ...;" }
func (u *UseStatement) statementNode() {}

// UseTraitStatement 表示类体内的 use Trait; 语句
type UseTraitStatement struct {
	BaseNode
	Traits []Expression `json:"traits"`
}

func (u *UseTraitStatement) GetChildren() []Node {
	var children []Node
	for _, t := range u.Traits {
		children = append(children, t)
	}
	return children
}

func (u *UseTraitStatement) String() string { return "use ...;" }
func (u *UseTraitStatement) statementNode()  {}

// ============= ALTERNATIVE (COLON) SYNTAX STATEMENTS =============

// AlternativeElseIf 表示 alternative if 语法中的一个 elseif 分支
type AlternativeElseIf struct {
	BaseNode
	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func (a *AlternativeElseIf) GetChildren() []Node {
	children := []Node{a.Condition}
	for _, s := range a.Body {
		children = append(children, s)
	}
	return children
}

func (a *AlternativeElseIf) String() string { return fmt.Sprintf("elseif (%s): ...", a.Condition.String()) }

// AlternativeIfStatement 表示 if (...): ... endif; 语法
type AlternativeIfStatement struct {
	BaseNode
	Condition Expression           `json:"condition"`
	Then      []Statement          `json:"then"`
	ElseIfs   []*AlternativeElseIf `json:"elseifs,omitempty"`
	Else      []Statement          `json:"else,omitempty"`
}

func (a *AlternativeIfStatement) GetChildren() []Node {
	children := []Node{a.Condition}
	for _, s := range a.Then {
		children = append(children, s)
	}
	for _, ei := range a.ElseIfs {
		children = append(children, ei)
	}
	for _, s := range a.Else {
		children = append(children, s)
	}
	return children
}

func (a *AlternativeIfStatement) String() string { return fmt.Sprintf("if (%s): ... endif;", a.Condition.String()) }
func (a *AlternativeIfStatement) statementNode() {}

// AlternativeWhileStatement 表示 while (...): ... endwhile; 语法
type AlternativeWhileStatement struct {
	BaseNode
	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func (a *AlternativeWhileStatement) GetChildren() []Node {
	children := []Node{a.Condition}
	for _, s := range a.Body {
		children = append(children, s)
	}
	return children
}

func (a *AlternativeWhileStatement) String() string {
	return fmt.Sprintf("while (%s): ... endwhile;", a.Condition.String())
}
func (a *AlternativeWhileStatement) statementNode() {}

// AlternativeForStatement 表示 for (...;...;...): ... endfor; 语法
type AlternativeForStatement struct {
	BaseNode
	Init      []Expression `json:"init,omitempty"`
	Condition []Expression `json:"condition,omitempty"`
	Update    []Expression `json:"update,omitempty"`
	Body      []Statement  `json:"body"`
}

func (a *AlternativeForStatement) GetChildren() []Node {
	var children []Node
	for _, e := range a.Init {
		children = append(children, e)
	}
	for _, e := range a.Condition {
		children = append(children, e)
	}
	for _, e := range a.Update {
		children = append(children, e)
	}
	for _, s := range a.Body {
		children = append(children, s)
	}
	return children
}

func (a *AlternativeForStatement) String() string { return "for (...): ... endfor;" }
func (a *AlternativeForStatement) statementNode()  {}

// AlternativeForeachStatement 表示 foreach (...): ... endforeach; 语法
type AlternativeForeachStatement struct {
	BaseNode
	Iterable Expression  `json:"iterable"`
	Key      Expression  `json:"key,omitempty"`
	Value    Expression  `json:"value"`
	Body     []Statement `json:"body"`
}

func (a *AlternativeForeachStatement) GetChildren() []Node {
	children := []Node{a.Iterable}
	if a.Key != nil {
		children = append(children, a.Key)
	}
	children = append(children, a.Value)
	for _, s := range a.Body {
		children = append(children, s)
	}
	return children
}

func (a *AlternativeForeachStatement) String() string { return "foreach (...): ... endforeach;" }
func (a *AlternativeForeachStatement) statementNode()  {}

// ============= CALL / ACCESS EXPRESSIONS =============

// CallExpression 表示函数调用表达式
type CallExpression struct {
	BaseNode
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments,omitempty"`
}

func NewCallExpression(pos lexer.Position, callee Expression) *CallExpression {
	return &CallExpression{BaseNode: BaseNode{Kind: ASTCall, Position: pos, LineNo: uint32(pos.Line)}, Callee: callee}
}

func (c *CallExpression) GetChildren() []Node {
	children := []Node{c.Callee}
	for _, a := range c.Arguments {
		children = append(children, a)
	}
	return children
}

func (c *CallExpression) String() string { return fmt.Sprintf("%s(...)", c.Callee.String()) }
func (c *CallExpression) expressionNode() {}

// MethodCallExpression 表示方法调用表达式 $obj->method()
type MethodCallExpression struct {
	BaseNode
	Object    Expression   `json:"object"`
	Method    Expression   `json:"method"`
	Arguments []Expression `json:"arguments,omitempty"`
}

func (m *MethodCallExpression) GetChildren() []Node {
	children := []Node{m.Object, m.Method}
	for _, a := range m.Arguments {
		children = append(children, a)
	}
	return children
}

func (m *MethodCallExpression) String() string {
	return fmt.Sprintf("%s->%s(...)", m.Object.String(), m.Method.String())
}
func (m *MethodCallExpression) expressionNode() {}

// PropertyAccessExpression 表示属性访问表达式 $obj->prop
type PropertyAccessExpression struct {
	BaseNode
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
}

func NewPropertyAccessExpression(pos lexer.Position, object, property Expression) *PropertyAccessExpression {
	return &PropertyAccessExpression{
		BaseNode: BaseNode{Kind: ASTProp, Position: pos, LineNo: uint32(pos.Line)},
		Object:   object,
		Property: property,
	}
}

func (p *PropertyAccessExpression) GetChildren() []Node { return []Node{p.Object, p.Property} }
func (p *PropertyAccessExpression) String() string {
	return fmt.Sprintf("%s->%s", p.Object.String(), p.Property.String())
}
func (p *PropertyAccessExpression) expressionNode() {}

// NullsafePropertyAccessExpression 表示 $obj?->prop
type NullsafePropertyAccessExpression struct {
	BaseNode
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
}

func (n *NullsafePropertyAccessExpression) GetChildren() []Node { return []Node{n.Object, n.Property} }
func (n *NullsafePropertyAccessExpression) String() string {
	return fmt.Sprintf("%s?->%s", n.Object.String(), n.Property.String())
}
func (n *NullsafePropertyAccessExpression) expressionNode() {}

// NullsafeMethodCallExpression 表示 $obj?->method()
type NullsafeMethodCallExpression struct {
	BaseNode
	Object    Expression   `json:"object"`
	Method    Expression   `json:"method"`
	Arguments []Expression `json:"arguments,omitempty"`
}

func (n *NullsafeMethodCallExpression) GetChildren() []Node {
	children := []Node{n.Object, n.Method}
	for _, a := range n.Arguments {
		children = append(children, a)
	}
	return children
}
func (n *NullsafeMethodCallExpression) String() string {
	return fmt.Sprintf("%s?->%s(...)", n.Object.String(), n.Method.String())
}
func (n *NullsafeMethodCallExpression) expressionNode() {}

// StaticAccessExpression 表示 Class::$member 形式的静态成员访问
type StaticAccessExpression struct {
	BaseNode
	Class    Expression `json:"class"`
	Property Expression `json:"property"`
}

func (s *StaticAccessExpression) GetChildren() []Node { return []Node{s.Class, s.Property} }
func (s *StaticAccessExpression) String() string {
	return fmt.Sprintf("%s::%s", s.Class.String(), s.Property.String())
}
func (s *StaticAccessExpression) expressionNode() {}

// StaticPropertyAccessExpression 表示 Class::$property
type StaticPropertyAccessExpression struct {
	BaseNode
	Class    Expression `json:"class"`
	Property Expression `json:"property"`
}

func (s *StaticPropertyAccessExpression) GetChildren() []Node { return []Node{s.Class, s.Property} }
func (s *StaticPropertyAccessExpression) String() string {
	return fmt.Sprintf("%s::$%s", s.Class.String(), s.Property.String())
}
func (s *StaticPropertyAccessExpression) expressionNode() {}

// ClassConstantAccessExpression 表示 Class::CONST
type ClassConstantAccessExpression struct {
	BaseNode
	Class    Expression `json:"class"`
	Constant Expression `json:"constant"`
}

func (c *ClassConstantAccessExpression) GetChildren() []Node { return []Node{c.Class, c.Constant} }
func (c *ClassConstantAccessExpression) String() string {
	return fmt.Sprintf("%s::%s", c.Class.String(), c.Constant.String())
}
func (c *ClassConstantAccessExpression) expressionNode() {}

// IncludeOrEvalExpression 表示 include/include_once/require/require_once/eval
type IncludeOrEvalExpression struct {
	BaseNode
	Expr Expression      `json:"expr"`
	Type lexer.TokenType `json:"type"`
}

func (i *IncludeOrEvalExpression) GetChildren() []Node { return []Node{i.Expr} }
func (i *IncludeOrEvalExpression) String() string      { return fmt.Sprintf("include %s", i.Expr.String()) }
func (i *IncludeOrEvalExpression) expressionNode()     {}

// ArrayElementExpression 表示数组字面量中的一个元素
type ArrayElementExpression struct {
	BaseNode
	Key   Expression `json:"key,omitempty"`
	Value Expression `json:"value"`
}

func (a *ArrayElementExpression) GetChildren() []Node {
	if a.Key != nil {
		return []Node{a.Key, a.Value}
	}
	return []Node{a.Value}
}

func (a *ArrayElementExpression) String() string {
	if a.Key != nil {
		return fmt.Sprintf("%s => %s", a.Key.String(), a.Value.String())
	}
	return a.Value.String()
}
func (a *ArrayElementExpression) expressionNode() {}

// VariableVariableExpression 表示 $$var 可变变量
type VariableVariableExpression struct {
	BaseNode
	Expression Expression `json:"expression"`
}

func (v *VariableVariableExpression) GetChildren() []Node { return []Node{v.Expression} }
func (v *VariableVariableExpression) String() string      { return "$$" + v.Expression.String() }
func (v *VariableVariableExpression) expressionNode()     {}

// CommaExpression 表示逗号表达式 (expr1, expr2, ...)
type CommaExpression struct {
	BaseNode
	Expressions []Expression `json:"expressions"`
}

func (c *CommaExpression) GetChildren() []Node {
	var children []Node
	for _, e := range c.Expressions {
		children = append(children, e)
	}
	return children
}

func (c *CommaExpression) String() string {
	var parts []string
	for _, e := range c.Expressions {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
func (c *CommaExpression) expressionNode() {}

// SpreadExpression 表示展开表达式 ...$args
type SpreadExpression struct {
	BaseNode
	Argument Expression `json:"argument"`
}

func (s *SpreadExpression) GetChildren() []Node { return []Node{s.Argument} }
func (s *SpreadExpression) String() string      { return "..." + s.Argument.String() }
func (s *SpreadExpression) expressionNode()     {}

// FirstClassCallable 表示一等可调用语法 strlen(...)
type FirstClassCallable struct {
	BaseNode
	Callee Expression `json:"callee,omitempty"`
}

func (f *FirstClassCallable) String() string { return "(...)" }
func (f *FirstClassCallable) expressionNode() {}

// CoalesceExpression 表示 ?? 操作符
type CoalesceExpression struct {
	BaseNode
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewCoalesceExpression(pos lexer.Position, left, right Expression) *CoalesceExpression {
	return &CoalesceExpression{
		BaseNode: BaseNode{Kind: ASTCoalesce, Position: pos, LineNo: uint32(pos.Line)},
		Left:     left,
		Right:    right,
	}
}

func (c *CoalesceExpression) GetChildren() []Node { return []Node{c.Left, c.Right} }
func (c *CoalesceExpression) String() string {
	return fmt.Sprintf("%s ?? %s", c.Left.String(), c.Right.String())
}
func (c *CoalesceExpression) expressionNode() {}

// ============= NUMBER LITERAL =============

const (
	IntegerKind = "integer"
	FloatKind   = "float"
)

// NumberLiteral 表示整数或浮点数字面量
type NumberLiteral struct {
	BaseNode
	Kind       string  `json:"kind"`
	Raw        string  `json:"raw"`
	IntValue   int64   `json:"int_value,omitempty"`
	FloatValue float64 `json:"float_value,omitempty"`
}

func (n *NumberLiteral) String() string { return n.Raw }
func (n *NumberLiteral) expressionNode() {}

// ============= CLASS-LIKE EXPRESSIONS =============

// AnonymousClass 表示 new class(...) extends X implements Y { ... }
type AnonymousClass struct {
	BaseNode
	Modifiers  []string     `json:"modifiers,omitempty"`
	Extends    Expression   `json:"extends,omitempty"`
	Implements []Expression `json:"implements,omitempty"`
	Body       []Statement  `json:"body,omitempty"`
	Arguments  []Expression `json:"arguments,omitempty"`
}

func (a *AnonymousClass) GetChildren() []Node {
	var children []Node
	if a.Extends != nil {
		children = append(children, a.Extends)
	}
	for _, i := range a.Implements {
		children = append(children, i)
	}
	for _, s := range a.Body {
		children = append(children, s)
	}
	for _, arg := range a.Arguments {
		children = append(children, arg)
	}
	return children
}

func (a *AnonymousClass) String() string { return "new class { ... }" }
func (a *AnonymousClass) expressionNode() {}

// ClassExpression 表示常规类声明
type ClassExpression struct {
	BaseNode
	Name       Expression   `json:"name"`
	Abstract   bool         `json:"abstract,omitempty"`
	Final      bool         `json:"final,omitempty"`
	Extends    Expression   `json:"extends,omitempty"`
	Implements []Expression `json:"implements,omitempty"`
	Body       []Statement  `json:"body,omitempty"`
}

func (c *ClassExpression) GetChildren() []Node {
	var children []Node
	if c.Name != nil {
		children = append(children, c.Name)
	}
	if c.Extends != nil {
		children = append(children, c.Extends)
	}
	for _, i := range c.Implements {
		children = append(children, i)
	}
	for _, s := range c.Body {
		children = append(children, s)
	}
	return children
}

func (c *ClassExpression) String() string {
	if c.Name != nil {
		return fmt.Sprintf("class %s { ... }", c.Name.String())
	}
	return "class { ... }"
}

// ClassExpression is compiled as a declaration; it still satisfies Statement
// since class declarations appear in statement position in PHP source.
func (c *ClassExpression) statementNode() {}

// ============= MISC SUPPORT TYPES =============

// ConstantDeclarator 表示 class 常量声明中的一个常量
type ConstantDeclarator struct {
	BaseNode
	Name  Expression `json:"name"`
	Value Expression `json:"value"`
}

func (c *ConstantDeclarator) GetChildren() []Node { return []Node{c.Name, c.Value} }
func (c *ConstantDeclarator) String() string {
	return fmt.Sprintf("%s = %s", c.Name.String(), c.Value.String())
}

// TypeHint 是用于类常量/属性类型提示的轻量级类型表示
// (PHP 的类型提示尚未完整实现，这里只保留类型名)
type TypeHint struct {
	Name string
}

// EnumCase 表示枚举中的一个 case
type EnumCase struct {
	BaseNode
	Name  Expression `json:"name"`
	Value Expression `json:"value,omitempty"`
}

func (e *EnumCase) GetChildren() []Node {
	if e.Value != nil {
		return []Node{e.Name, e.Value}
	}
	return []Node{e.Name}
}

func (e *EnumCase) String() string { return "case " + e.Name.String() }

// HookedPropertyDeclaration 表示带属性钩子的属性声明 (尚未实现)
type HookedPropertyDeclaration struct {
	BaseNode
}

func (h *HookedPropertyDeclaration) String() string { return "property { ... }" }
func (h *HookedPropertyDeclaration) statementNode()  {}
