package sanitise

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/portfoliopro/folio/internal/errs"
)

var (
	ErrSanitisation         = errors.New("failed sanitisation")
	ErrUnstableSanitisation = errors.New("sanitisation unstable")
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

const maxCntForStabilisation = 10

// Plain strips all markup from a short user-supplied field (names, headings,
// slugs, URLs shown as text). The result is trimmed.
func Plain(value string) (string, error) {
	out, err := stabilise(strictPolicy, value)
	if err != nil {
		return "", errs.Wrap(ErrSanitisation, err)
	}

	return strings.TrimSpace(out), nil
}

// RichText allows the user-generated-content subset of HTML used in bios and
// long descriptions, rejecting anything bluemonday considers unsafe.
func RichText(value string) (string, error) {
	out, err := stabilise(ugcPolicy, value)
	if err != nil {
		return "", errs.Wrap(ErrSanitisation, err)
	}

	return out, nil
}

// PlainAll sanitises each string in place via Plain.
func PlainAll(values ...*string) error {
	for _, v := range values {
		if v == nil {
			continue
		}

		out, err := Plain(*v)
		if err != nil {
			return err
		}

		*v = out
	}

	return nil
}

// stabilise re-applies the policy until a fixpoint, in case an attacker
// embeds markup that only appears after one stripping pass.
func stabilise(p *bluemonday.Policy, value string) (string, error) {
	cnt := 0

	for {
		sanitised := p.Sanitize(value)
		if sanitised == value {
			return sanitised, nil
		}

		value = sanitised

		cnt++
		if cnt == maxCntForStabilisation {
			return "", ErrUnstableSanitisation
		}
	}
}
