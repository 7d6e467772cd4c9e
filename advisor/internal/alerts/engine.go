package alerts

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

const (
	defaultCooldown = 15 * time.Minute
	maxHistoryLen   = 200
	recentWindow    = time.Hour
)

// Alert states.
const (
	StateFiring   = "firing"
	StateResolved = "resolved"
)

// Severities accepted in Rule.Severity.
var Severities = []string{"critical", "warning", "info"}

// Rule defines one threshold-based alert condition.
type Rule struct {
	// Name identifies the alert and is the deduplication key.
	Name string `yaml:"name"`

	// Condition is an expression such as "confidence < 0.6"; see Condition.
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info. Empty means warning.
	Severity string `yaml:"severity"`

	// Cooldown is the minimum time between two firings of the rule.
	// Zero means 15 minutes.
	Cooldown time.Duration `yaml:"cooldown"`
}

// Alert is one firing or resolution produced by the engine.
type Alert struct {
	ID         string     `json:"id" yaml:"id"`
	RuleName   string     `json:"rule_name" yaml:"rule_name"`
	Crop       string     `json:"crop" yaml:"crop"`
	Severity   string     `json:"severity" yaml:"severity"`
	Message    string     `json:"message" yaml:"message"`
	Value      float64    `json:"value" yaml:"value"`
	FiredAt    time.Time  `json:"fired_at" yaml:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
	State      string     `json:"state" yaml:"state"`
}

type compiledRule struct {
	Rule
	cond Condition
}

// Engine evaluates alert rules against recommendation results and logs the
// transitions. It is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	rules    []compiledRule
	active   map[string]*Alert    // key: rule name
	lastFire map[string]time.Time // for cooldown
	history  []*Alert             // recently resolved alerts

	now func() time.Time
}

// New compiles rules into an Engine. An Engine with no rules is valid and
// Evaluate becomes a no-op.
func New(rules []Rule) (*Engine, error) {
	compiled, err := compile(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:    compiled,
		active:   make(map[string]*Alert),
		lastFire: make(map[string]time.Time),
		now:      time.Now,
	}, nil
}

// Validate reports the first rule that New would reject.
func Validate(rules []Rule) error {
	_, err := compile(rules)
	return err
}

func compile(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("alerts: rules[%d]: name is required", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("alerts: rules[%d]: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true

		cond, err := ParseCondition(r.Condition)
		if err != nil {
			return nil, fmt.Errorf("alerts: rule %q: %w", r.Name, err)
		}
		if r.Severity == "" {
			r.Severity = "warning"
		}
		if !validSeverity(r.Severity) {
			return nil, fmt.Errorf("alerts: rule %q: severity %q must be critical, warning or info", r.Name, r.Severity)
		}
		if r.Cooldown < 0 {
			return nil, fmt.Errorf("alerts: rule %q: cooldown must not be negative", r.Name)
		}
		if r.Cooldown == 0 {
			r.Cooldown = defaultCooldown
		}
		out = append(out, compiledRule{Rule: r, cond: cond})
	}
	return out, nil
}

func validSeverity(s string) bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}

// SetRules swaps the rule set, for config hot reload. Alerts for rules that
// no longer exist are dropped without a resolution.
func (e *Engine) SetRules(rules []Rule) error {
	compiled, err := compile(rules)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = compiled
	keep := make(map[string]bool, len(compiled))
	for _, r := range compiled {
		keep[r.Name] = true
	}
	for name := range e.active {
		if !keep[name] {
			delete(e.active, name)
			delete(e.lastFire, name)
		}
	}
	return nil
}

// Evaluate tests all rules against res and returns the transitions it
// caused: alerts that fired and alerts that resolved. A rule still within
// its cooldown does not fire again.
func (e *Engine) Evaluate(res *types.Result) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.rules) == 0 {
		return nil
	}

	now := e.now()
	crop := ""
	if res != nil {
		crop = res.RecommendedCrop
	}

	var out []Alert
	for _, rule := range e.rules {
		fires, value := rule.cond.Eval(res)

		if fires {
			if last, ok := e.lastFire[rule.Name]; ok && now.Sub(last) < rule.Cooldown {
				continue
			}
			a := &Alert{
				ID:       uuid.New().String(),
				RuleName: rule.Name,
				Crop:     crop,
				Severity: rule.Severity,
				Value:    value,
				Message: fmt.Sprintf("[%s] %s fired for %s: %s (value %.2f)",
					rule.Severity, rule.Name, crop, rule.cond, value),
				FiredAt: now,
				State:   StateFiring,
			}
			e.active[rule.Name] = a
			e.lastFire[rule.Name] = now
			out = append(out, *a)

			slog.Warn("alert fired",
				"rule", rule.Name,
				"crop", crop,
				"value", value,
				"severity", rule.Severity,
			)
			continue
		}

		a, ok := e.active[rule.Name]
		if !ok {
			continue
		}
		resolved := now
		a.State = StateResolved
		a.ResolvedAt = &resolved
		delete(e.active, rule.Name)

		e.history = append(e.history, a)
		if len(e.history) > maxHistoryLen {
			e.history = e.history[len(e.history)-maxHistoryLen:]
		}
		out = append(out, *a)

		slog.Info("alert resolved", "rule", rule.Name, "crop", crop)
	}
	return out
}

// Active returns copies of all currently firing alerts plus any alerts
// resolved within the past hour, newest first.
func (e *Engine) Active() []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindow)
	out := make([]Alert, 0, len(e.active))
	for _, a := range e.active {
		out = append(out, *a)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FiredAt.After(out[j].FiredAt)
	})
	return out
}
