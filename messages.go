package moneycalc

import (
	"errors"
	"strconv"
	"strings"
)

// Language selects the language of failure messages.
type Language int8

const (
	Russian Language = iota
	English
)

// ParseLanguage parses a language code, "ru" or "en".
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ru", "russian":
		return Russian, nil
	case "en", "english":
		return English, nil
	default:
		return 0, errors.New("moneycalc: unknown language " + strconv.Quote(s))
	}
}

func (l Language) String() string {
	switch l {
	case Russian:
		return "ru"
	case English:
		return "en"
	default:
		return "Language(" + strconv.Itoa(int(l)) + ")"
	}
}

type message int8

const (
	msgEmpty message = iota
	msgNoExpr
	msgUnexpected
	msgUnexpectedEnd
	msgParen
	msgNumber
	msgDivZero
	msgInvalid
	msgFractional
	msgPowerTooLarge
	msgOverflow
	msgCount
)

// markers holds the failure marker which begins every failure message.
var markers = [...]string{
	Russian: "Ошибка",
	English: "Error",
}

var messages = [...][msgCount]string{
	Russian: {
		msgEmpty:         "пустое выражение",
		msgNoExpr:        "нет выражения",
		msgUnexpected:    "Неожиданный токен: ",
		msgUnexpectedEnd: "Неожиданный конец выражения",
		msgParen:         "Ожидается )",
		msgNumber:        "Некорректное число: ",
		msgDivZero:       "деление на ноль",
		msgInvalid:       "недопустимая операция",
		msgFractional:    "Невозможно вычислить степень: Дробные степени не поддерживаются в денежных расчётах",
		msgPowerTooLarge: "Невозможно вычислить степень: результат слишком велик",
		msgOverflow:      "недопустимая операция: результат превышает рабочую точность",
	},
	English: {
		msgEmpty:         "empty expression",
		msgNoExpr:        "no expression",
		msgUnexpected:    "unexpected token: ",
		msgUnexpectedEnd: "unexpected end of expression",
		msgParen:         "expected )",
		msgNumber:        "invalid number: ",
		msgDivZero:       "division by zero",
		msgInvalid:       "invalid operation",
		msgFractional:    "cannot compute power: fractional exponents are not supported in money calculations",
		msgPowerTooLarge: "cannot compute power: result is too large",
		msgOverflow:      "invalid operation: result exceeds working precision",
	},
}

// Message creates the failure message for an error from Evaluate in the
// calculator's language. The message begins with the language's failure
// marker.
func (c *Calculator) Message(err error) string {
	lang := c.lang
	if int(lang) < 0 || int(lang) >= len(messages) {
		lang = Russian
	}
	t := &messages[lang]
	var (
		ee *EmptyExpressionError
		se *SyntaxError
		ne *InvalidNumberError
		de *DivisionByZeroError
		ue *UnsupportedOperationError
	)
	var text string
	switch {
	case errors.As(err, &ee):
		text = t[msgEmpty]
	case errors.As(err, &se):
		switch {
		case se.Kind == MissingCloseParen:
			text = t[msgParen]
		case se.Kind == EmptyInput:
			text = t[msgNoExpr]
		case se.Token == "":
			text = t[msgUnexpectedEnd]
		default:
			text = t[msgUnexpected] + se.Token
		}
	case errors.As(err, &ne):
		text = t[msgNumber] + ne.Text
	case errors.As(err, &de):
		text = t[msgDivZero]
	case errors.As(err, &ue):
		switch ue.Reason {
		case ReasonFractionalExponent:
			text = t[msgFractional]
		case ReasonPowerTooLarge:
			text = t[msgPowerTooLarge]
		case ReasonOverflow:
			text = t[msgOverflow]
		default:
			text = t[msgInvalid]
		}
	default:
		text = err.Error()
	}
	return markers[lang] + ": " + text
}

// IsFailure reports whether s, a result of Calculate, is a failure message in
// any language rather than a number.
func IsFailure(s string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Kind returns a short stable name for the class of an error from Evaluate:
// "empty", "syntax", "number", "division_by_zero", or "unsupported". Other
// errors give "internal".
func Kind(err error) string {
	var (
		ee *EmptyExpressionError
		se *SyntaxError
		ne *InvalidNumberError
		de *DivisionByZeroError
		ue *UnsupportedOperationError
	)
	switch {
	case errors.As(err, &ee):
		return "empty"
	case errors.As(err, &se):
		return "syntax"
	case errors.As(err, &ne):
		return "number"
	case errors.As(err, &de):
		return "division_by_zero"
	case errors.As(err, &ue):
		return "unsupported"
	default:
		return "internal"
	}
}
