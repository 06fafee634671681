package ast

import (
	"strconv"
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// NewProgram 创建程序根节点
func NewProgram(pos lexer.Position) *Program {
	return &Program{
		BaseNode: BaseNode{Kind: ASTStmtList, Position: pos, LineNo: uint32(pos.Line)},
	}
}

// NewLabelStatement 创建 goto 标签语句
func NewLabelStatement(pos lexer.Position, name Expression) *LabelStatement {
	return &LabelStatement{
		BaseNode: BaseNode{Kind: ASTLabel, Position: pos, LineNo: uint32(pos.Line)},
		Name:     name,
	}
}

// NewIfStatement 创建 if 语句
func NewIfStatement(pos lexer.Position, test Expression) *IfStatement {
	return &IfStatement{
		BaseNode: BaseNode{Kind: ASTIf, Position: pos, LineNo: uint32(pos.Line)},
		Test:     test,
	}
}

// NewWhileStatement 创建 while 语句
func NewWhileStatement(pos lexer.Position, test Expression) *WhileStatement {
	return &WhileStatement{
		BaseNode: BaseNode{Kind: ASTWhile, Position: pos, LineNo: uint32(pos.Line)},
		Test:     test,
	}
}

// NewForStatement 创建 for 语句
func NewForStatement(pos lexer.Position) *ForStatement {
	return &ForStatement{
		BaseNode: BaseNode{Kind: ASTFor, Position: pos, LineNo: uint32(pos.Line)},
	}
}

// NewFunctionDeclaration 创建函数声明
func NewFunctionDeclaration(pos lexer.Position, name Expression) *FunctionDeclaration {
	return &FunctionDeclaration{
		BaseNode: BaseNode{Kind: ASTFuncDecl, Position: pos, LineNo: uint32(pos.Line)},
		Name:     name,
	}
}

// NewReturnStatement 创建 return 语句
func NewReturnStatement(pos lexer.Position, argument Expression) *ReturnStatement {
	return &ReturnStatement{
		BaseNode: BaseNode{Kind: ASTReturn, Position: pos, LineNo: uint32(pos.Line)},
		Argument: argument,
	}
}

// NewBlockStatement 创建块语句
func NewBlockStatement(pos lexer.Position) *BlockStatement {
	return &BlockStatement{
		BaseNode: BaseNode{Kind: ASTStmtList, Position: pos, LineNo: uint32(pos.Line)},
	}
}

// NewExpressionStatement 创建表达式语句
func NewExpressionStatement(pos lexer.Position, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{
		BaseNode:   BaseNode{Kind: ASTZval, Position: pos, LineNo: uint32(pos.Line)},
		Expression: expr,
	}
}

// NewVariable 创建变量节点
func NewVariable(pos lexer.Position, name string) *Variable {
	return &Variable{
		BaseNode: BaseNode{Kind: ASTVar, Position: pos, LineNo: uint32(pos.Line)},
		Name:     name,
	}
}

// NewNumberLiteral 创建整数或浮点数字面量，raw 为词法器给出的原始文本
func NewNumberLiteral(pos lexer.Position, raw string, kind string) *NumberLiteral {
	n := &NumberLiteral{
		BaseNode: BaseNode{Kind: ASTZval, Position: pos, LineNo: uint32(pos.Line)},
		Kind:     kind,
		Raw:      raw,
	}
	switch kind {
	case FloatKind:
		n.FloatValue, _ = strconv.ParseFloat(raw, 64)
	default:
		cleaned := strings.ReplaceAll(raw, "_", "")
		if v, err := strconv.ParseInt(cleaned, 0, 64); err == nil {
			n.IntValue = v
		} else if v, err := strconv.ParseUint(cleaned, 0, 64); err == nil {
			n.IntValue = int64(v)
		}
	}
	return n
}

// NewStringLiteral 创建字符串字面量
func NewStringLiteral(pos lexer.Position, value, raw string) *StringLiteral {
	return &StringLiteral{
		BaseNode: BaseNode{Kind: ASTZval, Position: pos, LineNo: uint32(pos.Line)},
		Value:    value,
		Raw:      raw,
	}
}

// NewUnaryExpression 创建一元表达式（前缀或后缀）
func NewUnaryExpression(pos lexer.Position, operator string, operand Expression, prefix bool) *UnaryExpression {
	return &UnaryExpression{
		BaseNode: BaseNode{Kind: ASTUnaryOp, Position: pos, LineNo: uint32(pos.Line)},
		Operator: operator,
		Operand:  operand,
		Prefix:   prefix,
	}
}

// NewArrayExpression 创建数组表达式
func NewArrayExpression(pos lexer.Position) *ArrayExpression {
	return &ArrayExpression{
		BaseNode: BaseNode{Kind: ASTArray, Position: pos, LineNo: uint32(pos.Line)},
	}
}

// NewBinaryExpression 创建二元表达式
func NewBinaryExpression(pos lexer.Position, left Expression, operator string, right Expression) *BinaryExpression {
	return &BinaryExpression{
		BaseNode: BaseNode{Kind: ASTBinaryOp, Position: pos, LineNo: uint32(pos.Line)},
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

// NewAssignmentExpression 创建赋值表达式
func NewAssignmentExpression(pos lexer.Position, left Expression, operator string, right Expression) *AssignmentExpression {
	return &AssignmentExpression{
		BaseNode: BaseNode{Kind: ASTAssign, Position: pos, LineNo: uint32(pos.Line)},
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

// NewSwitchStatement 创建 switch 语句
func NewSwitchStatement(pos lexer.Position, discriminant Expression) *SwitchStatement {
	return &SwitchStatement{
		BaseNode:     BaseNode{Kind: ASTSwitch, Position: pos, LineNo: uint32(pos.Line)},
		Discriminant: discriminant,
	}
}

// NewSwitchCase 创建 switch 的 case/default 分支，test 为 nil 表示 default
func NewSwitchCase(pos lexer.Position, test Expression) *SwitchCase {
	return &SwitchCase{
		BaseNode: BaseNode{Kind: ASTSwitchCase, Position: pos, LineNo: uint32(pos.Line)},
		Test:     test,
	}
}

// NewNewExpression 创建 new 表达式
func NewNewExpression(pos lexer.Position, class Expression) *NewExpression {
	return &NewExpression{
		BaseNode: BaseNode{Kind: ASTNew, Position: pos, LineNo: uint32(pos.Line)},
		Class:    class,
	}
}

// NewCloneExpression 创建 clone 表达式
func NewCloneExpression(pos lexer.Position, object Expression) *CloneExpression {
	return &CloneExpression{
		BaseNode: BaseNode{Kind: ASTClone, Position: pos, LineNo: uint32(pos.Line)},
		Object:   object,
	}
}

// NewErrorSuppressionExpression 创建 @ 错误抑制表达式
func NewErrorSuppressionExpression(pos lexer.Position, expr Expression) *ErrorSuppressionExpression {
	return &ErrorSuppressionExpression{
		BaseNode:   BaseNode{Kind: ASTSilence, Position: pos, LineNo: uint32(pos.Line)},
		Expression: expr,
	}
}

// NewArrayAccessExpression 创建数组下标访问表达式
func NewArrayAccessExpression(pos lexer.Position, array Expression, index *Expression) *ArrayAccessExpression {
	return &ArrayAccessExpression{
		BaseNode: BaseNode{Kind: ASTDim, Position: pos, LineNo: uint32(pos.Line)},
		Array:    array,
		Index:    index,
	}
}

// NewEmptyExpression 创建 empty() 表达式
func NewEmptyExpression(pos lexer.Position, expr Expression) *EmptyExpression {
	return &EmptyExpression{
		BaseNode:   BaseNode{Kind: ASTEmpty, Position: pos, LineNo: uint32(pos.Line)},
		Expression: expr,
	}
}

// DocBlockComment 表示文档注释块（/** ... */），仅作为可附着于声明的只读节点保留
type DocBlockComment struct {
	BaseNode
	Text string `json:"text"`
	Raw  string `json:"raw"`
}

func (d *DocBlockComment) GetChildren() []Node { return nil }
func (d *DocBlockComment) String() string      { return d.Raw }
func (d *DocBlockComment) expressionNode()     {}

// NewDocBlockComment 创建文档注释块节点
func NewDocBlockComment(pos lexer.Position, text, raw string) *DocBlockComment {
	return &DocBlockComment{
		BaseNode: BaseNode{Kind: ASTZval, Position: pos, LineNo: uint32(pos.Line)},
		Text:     text,
		Raw:      raw,
	}
}
