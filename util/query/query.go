// Package query implements the single-filter discipline shared by every
// list endpoint: at most one named filter may be set on a request, so each
// lookup stays a single indexed query.
package query

import (
	"errors"

	"github.com/google/uuid"
)

type Kind int

const (
	All Kind = iota
	ByID
	ByBookID
	ByBorrower
	ByApprovedBy
	ByTitle
	ByName
	ByEmail
)

var (
	ErrMultiple  = errors.New("only one query param allowed")
	ErrInvalidID = errors.New("invalid id")
)

// Param is one raw query value with the filter kind it maps to.
type Param struct {
	Kind  Kind
	Value string
}

func ID(v string) Param         { return Param{Kind: ByID, Value: v} }
func BookID(v string) Param     { return Param{Kind: ByBookID, Value: v} }
func Borrower(v string) Param   { return Param{Kind: ByBorrower, Value: v} }
func ApprovedBy(v string) Param { return Param{Kind: ByApprovedBy, Value: v} }
func Title(v string) Param      { return Param{Kind: ByTitle, Value: v} }
func Name(v string) Param       { return Param{Kind: ByName, Value: v} }
func Email(v string) Param      { return Param{Kind: ByEmail, Value: v} }

// Filter is the decided variant. ID is set for id-shaped kinds,
// Text for the rest. The zero value lists everything.
type Filter struct {
	Kind Kind
	ID   uuid.UUID
	Text string
}

// One picks the single non-empty param, rejecting requests that set more
// than one and id values that do not parse.
func One(params ...Param) (Filter, error) {
	var set *Param
	for i := range params {
		if params[i].Value == "" {
			continue
		}
		if set != nil {
			return Filter{}, ErrMultiple
		}
		set = &params[i]
	}
	if set == nil {
		return Filter{Kind: All}, nil
	}

	switch set.Kind {
	case ByID, ByBookID, ByBorrower, ByApprovedBy:
		id, err := uuid.Parse(set.Value)
		if err != nil {
			return Filter{}, ErrInvalidID
		}
		return Filter{Kind: set.Kind, ID: id}, nil
	default:
		return Filter{Kind: set.Kind, Text: set.Value}, nil
	}
}

// Limit is the result cap for the variant: unique keys return one row,
// everything else is capped at 20.
func (f Filter) Limit() int {
	switch f.Kind {
	case ByID, ByEmail:
		return 1
	default:
		return 20
	}
}
