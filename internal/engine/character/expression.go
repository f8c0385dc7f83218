package character

// Expression is a facial expression.
type Expression uint8

// Expressions, in action id order (action id = Expression + 98).
const (
	ExprDefault Expression = iota
	ExprBlink
	ExprHit
	ExprSmile
	ExprTroubled
	ExprCry
	ExprAngry
	ExprBewildered
	ExprStunned
	ExprBlaze
	ExprBowing
	ExprCheers
	ExprChu
	ExprDam
	ExprDespair
	ExprGlitter
	ExprHot
	ExprHum
	ExprLove
	ExprOops
	ExprPain
	ExprShine
	ExprVomit
	ExprWink

	NumExpressions
)

// expressionActionBase is the action id of ExprDefault.
const expressionActionBase = 98

var expressionNames = [NumExpressions]string{
	"default", "blink", "hit", "smile", "troubled", "cry",
	"angry", "bewildered", "stunned", "blaze", "bowing", "cheers",
	"chu", "dam", "despair", "glitter", "hot", "hum",
	"love", "oops", "pain", "shine", "vomit", "wink",
}

// String returns the archive name of the expression.
func (e Expression) String() string {
	if e >= NumExpressions {
		return ""
	}
	return expressionNames[e]
}

// ExpressionByName returns the expression stored under name.
func ExpressionByName(name string) (Expression, bool) {
	for i, n := range expressionNames {
		if n == name {
			return Expression(i), true
		}
	}
	return ExprDefault, false
}

// ExpressionByAction maps an emote action id to an expression. Unknown ids
// yield ExprDefault and false.
func ExpressionByAction(id int32) (Expression, bool) {
	e := id - expressionActionBase
	if e < 0 || e >= int32(NumExpressions) {
		return ExprDefault, false
	}
	return Expression(e), true
}
