package writer

import (
	"strings"

	"github.com/chriserin/jsxgen/internal/errors"
)

// Policy decides what happens when a generated file already exists with
// different content.
type Policy string

const (
	PolicyNever     Policy = "never"
	PolicyAlways    Policy = "always"
	PolicyPrompt    Policy = "prompt"
	PolicyUnchanged Policy = "unchanged" // overwrite only files nobody edited since the last write
)

var Policies = []Policy{PolicyNever, PolicyAlways, PolicyPrompt, PolicyUnchanged}

func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Policies {
		if p == known {
			return p, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidArgument, "unknown overwrite policy %q (want never, always, prompt or unchanged)", s)
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Policy) String() string {
	return string(p)
}
