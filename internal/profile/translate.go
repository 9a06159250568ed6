package profile

import (
	"fmt"
	"strings"

	"github.com/soar/xrbridge/internal/runtime"
)

// BindingError reports a legacy path that rewrote to something outside the
// profile's legal-path set. The binding is skipped; the rest of the action
// set continues to bind.
type BindingError struct {
	Profile   string
	Hand      Hand
	Input     string
	Rewritten string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("profile %s: %s hand: %q rewrote to %q, which is not a legal path",
		e.Profile, e.Hand, e.Input, e.Rewritten)
}

// Translate applies the profile's rewrite table to a legacy path fragment
// (e.g. "input/squeeze/click"). The table is scanned once, in declaration
// order, each rule matching against the current (possibly already rewritten)
// path; a Stop rule halts the scan after substituting. Rules are never
// re-scanned from the top. No matching rule leaves the path unchanged.
func Translate(p Profile, path string) string {
	for _, rule := range p.TranslateMap() {
		if strings.Contains(path, rule.From) {
			path = strings.ReplaceAll(path, rule.From, rule.To)
			if rule.Stop {
				break
			}
		}
	}
	return path
}

// TranslateAndValidate rewrites a legacy path fragment for the given hand
// and checks the fully qualified result against the profile's legal-path
// set. An illegal result returns a *BindingError.
func TranslateAndValidate(p Profile, hand Hand, path string) (string, error) {
	rewritten := Translate(p, path)
	full := hand.UserPath() + "/" + rewritten
	if !legal(p, full) {
		return "", &BindingError{
			Profile:   p.Path(),
			Hand:      hand,
			Input:     path,
			Rewritten: full,
		}
	}
	return full, nil
}

// BindingRequest is one legacy action path an application asked to bind.
type BindingRequest struct {
	Action string
	Hand   Hand
	Path   string
}

// SuggestedBinding pairs an action with a resolved hardware path handle.
type SuggestedBinding struct {
	Action string
	Path   runtime.Path
}

// SuggestBindings translates a session's requested action paths for one
// profile and resolves the survivors into the suggestions the runtime
// expects. Illegal rewrites are collected per request; they do not stop the
// remaining requests from binding.
func SuggestBindings(p Profile, resolve runtime.PathResolver, requests []BindingRequest) ([]SuggestedBinding, []error) {
	var (
		bindings []SuggestedBinding
		errs     []error
	)
	for _, req := range requests {
		full, err := TranslateAndValidate(p, req.Hand, req.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		bindings = append(bindings, SuggestedBinding{
			Action: req.Action,
			Path:   resolve(full),
		})
	}
	return bindings, errs
}
