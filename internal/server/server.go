// Package server exposes a calculator over HTTP for chat bots and other
// callers that can't link Go code.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zephyrtronium/moneycalc"
	"github.com/zephyrtronium/moneycalc/internal/config"
)

// Request is the body of a calculation request.
type Request struct {
	Expression string `json:"expression"`
	// Precision overrides the server's default precision when present.
	Precision *uint `json:"precision,omitempty"`
	// Lang overrides the server's message language when present.
	Lang string `json:"lang,omitempty"`
}

// Response is the body of a calculation response. Exactly one of Result and
// Error is set.
type Response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	// Kind classifies Error; see moneycalc.Kind.
	Kind string `json:"kind,omitempty"`
}

type server struct {
	calc *moneycalc.Calculator
}

// New creates an HTTP handler serving calculations with calc's defaults.
//
//	POST /v1/calculate  Request -> Response
//	GET  /healthz
func New(calc *moneycalc.Calculator) http.Handler {
	s := server{calc: calc}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/v1/calculate", s.calculate)
	return r
}

func (s *server) calculate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error(), Kind: "request"})
		return
	}
	calc := s.calc
	var opts []moneycalc.Option
	if req.Precision != nil {
		if *req.Precision > config.MaxPrecision {
			c.JSON(http.StatusBadRequest, Response{Error: "precision out of range", Kind: "request"})
			return
		}
		opts = append(opts, moneycalc.Prec(*req.Precision))
	}
	if req.Lang != "" {
		l, err := moneycalc.ParseLanguage(req.Lang)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: err.Error(), Kind: "request"})
			return
		}
		opts = append(opts, moneycalc.Lang(l))
	}
	if len(opts) > 0 {
		calc = calc.Clone(opts...)
	}
	r, err := calc.Evaluate(req.Expression)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Error: calc.Message(err), Kind: moneycalc.Kind(err)})
		return
	}
	c.JSON(http.StatusOK, Response{Result: moneycalc.Format(r, calc.Prec())})
}
