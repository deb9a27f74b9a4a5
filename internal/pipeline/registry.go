package pipeline

import (
	"fmt"
	"sort"

	"github.com/ugswater/dbseeder/internal/mapper"
	"github.com/ugswater/dbseeder/internal/source"
)

// Binding pairs a source format with its mapping rules. The orchestrator
// works exclusively through bindings, so adding a program touches only the
// format table and the rule table, never the pipeline.
type Binding struct {
	Format source.Format
	Rules  *mapper.Rules
}

// Bind resolves a format tag into a binding.
func Bind(tag string) (Binding, error) {
	f, err := source.Lookup(tag)
	if err != nil {
		return Binding{}, err
	}
	r := mapper.RulesFor(tag)
	if r == nil {
		return Binding{}, fmt.Errorf("no mapping rules for source format %q", tag)
	}
	return Binding{Format: f, Rules: r}, nil
}

// BindAll resolves a list of tags, rejecting duplicates so a typo like
// "wqp wqp" does not silently double-process a source.
func BindAll(tags []string) ([]Binding, error) {
	seen := make(map[string]struct{}, len(tags))
	bindings := make([]Binding, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("source format %q given twice", tag)
		}
		seen[tag] = struct{}{}
		b, err := Bind(tag)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// Tags lists every known format tag in stable order.
func Tags() []string {
	tags := make([]string, 0, len(source.Formats))
	for tag := range source.Formats {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
