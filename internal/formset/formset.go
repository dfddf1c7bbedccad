// Package formset implements the Django-formset wire conventions the
// viagens forms are parsed with on the server: indexed field names
// ("<prefix>-<i>-<field>"), management fields and the serialized
// destination order string. Internal state lives in proper structs
// elsewhere; this package is the only place that knows the naming.
package formset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Management field suffixes.
const (
	TotalForms   = "TOTAL_FORMS"
	InitialForms = "INITIAL_FORMS"
	MinNumForms  = "MIN_NUM_FORMS"
	MaxNumForms  = "MAX_NUM_FORMS"
)

// PlaceholderIndex is the index slot Django uses in empty-form templates.
// Keys carrying it are never renumbered.
const PlaceholderIndex = "__prefix__"

// Form is a flat single-valued form in wire format.
type Form map[string]string

// Key builds an indexed field name, e.g. Key("trechos", 0, "saida_data").
func Key(prefix string, index int, field string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, index, field)
}

// TemplateKey builds the placeholder variant of an indexed field name.
func TemplateKey(prefix, field string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, PlaceholderIndex, field)
}

// ManagementKey builds a management field name, e.g. "destinos-TOTAL_FORMS".
func ManagementKey(prefix, name string) string {
	return prefix + "-" + name
}

// Get returns the value for key, empty string when absent.
func (f Form) Get(key string) string {
	return f[key]
}

// Field returns the value of an indexed field.
func (f Form) Field(prefix string, index int, field string) string {
	return f[Key(prefix, index, field)]
}

// Total reads <prefix>-TOTAL_FORMS, zero when missing or malformed.
func (f Form) Total(prefix string) int {
	n, err := strconv.Atoi(f[ManagementKey(prefix, TotalForms)])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetManagement writes the four management fields for a formset of n forms.
func (f Form) SetManagement(prefix string, n int) {
	f[ManagementKey(prefix, TotalForms)] = strconv.Itoa(n)
	f[ManagementKey(prefix, InitialForms)] = "0"
	f[ManagementKey(prefix, MinNumForms)] = "0"
	f[ManagementKey(prefix, MaxNumForms)] = "1000"
}

// indexedKeyRe matches "<prefix>-<digits>-<field>" for a given prefix. The
// anchor on the numeric index leaves placeholder template keys untouched.
func indexedKeyRe(prefix string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `-(\d+)-(.+)$`)
}

// Renumber rewrites every indexed key of prefix according to the old→new
// index mapping and returns the rewritten form. Keys whose old index has no
// mapping are dropped (forms removed from the tail), all other keys pass
// through unchanged. The TOTAL_FORMS management field is updated to the
// number of distinct target indices.
func (f Form) Renumber(prefix string, mapping map[int]int) Form {
	re := indexedKeyRe(prefix)
	out := make(Form, len(f))
	targets := make(map[int]bool, len(mapping))

	for key, value := range f {
		m := re.FindStringSubmatch(key)
		if m == nil {
			out[key] = value
			continue
		}
		oldIdx, _ := strconv.Atoi(m[1])
		newIdx, ok := mapping[oldIdx]
		if !ok {
			continue
		}
		out[Key(prefix, newIdx, m[2])] = value
		targets[newIdx] = true
	}

	if len(targets) > 0 {
		out[ManagementKey(prefix, TotalForms)] = strconv.Itoa(len(targets))
	}
	return out
}

// OrderString serializes a destination ordering as the comma-joined index
// string the server expects in "destinos-order".
func OrderString(order []int) string {
	parts := make([]string, len(order))
	for i, idx := range order {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// ParseOrder parses a comma-joined index string. Blank input yields nil;
// a malformed entry fails the whole string.
func ParseOrder(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	order := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid order entry %q: %w", part, err)
		}
		order = append(order, idx)
	}
	return order, nil
}

// PruneTrailing drops trailing forms whose user-owned fields are all blank,
// never going below one form. It mirrors the server-side cleanup that runs
// before formset validation so placeholder rows at the tail don't fail
// required-field checks.
func (f Form) PruneTrailing(prefix string, userFields ...string) Form {
	total := f.Total(prefix)
	if total <= 1 {
		return f
	}

	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}

	hasUserData := func(index int) bool {
		for _, field := range userFields {
			if strings.TrimSpace(out.Field(prefix, index, field)) != "" {
				return true
			}
		}
		return false
	}

	for total > 1 && !hasUserData(total-1) {
		total--
	}
	out[ManagementKey(prefix, TotalForms)] = strconv.Itoa(total)
	return out
}
