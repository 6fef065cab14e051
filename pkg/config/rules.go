package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/animation"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
)

// WindowInfo is what a rule can match against.
type WindowInfo struct {
	Process string
	Title   string
	Class   string
}

// MatchKind selects which window attribute a rule inspects.
type MatchKind int

const (
	MatchProcess MatchKind = iota
	MatchTitle
	MatchClass
)

// Strategy selects how the rule value is compared.
type Strategy int

const (
	StrategyEquals Strategy = iota
	StrategyContains
	StrategyRegex
)

// Decision is the outcome of rule evaluation for one window.
type Decision struct {
	// Enabled false means the window gets no border at all.
	Enabled bool
	// Config is the global configuration with the matched rule's
	// overrides applied, or the plain global configuration when no rule
	// matched.
	Config Resolved
}

type compiledRule struct {
	kind     MatchKind
	strategy Strategy
	value    string
	re       *regexp.Regexp
	enabled  bool
	src      *RuleConfig
}

// Ruleset is the compiled window rule list. Rules are evaluated in file
// order and the first match wins.
type Ruleset struct {
	global Resolved
	rules  []compiledRule
	log    *logrus.Logger
}

// Compile resolves the global section and compiles the rule list. Rules
// with an unparseable predicate are skipped with a warning; a bad regex
// never takes down the whole configuration.
func Compile(cfg *Config, log *logrus.Logger) *Ruleset {
	rs := &Ruleset{global: cfg.Global.Resolve(log), log: log}
	for i := range cfg.WindowRules {
		rc := &cfg.WindowRules[i]
		cr, err := compileRule(rc)
		if err != nil {
			log.WithError(err).WithField("rule", i).Warn("skipping invalid window rule")
			continue
		}
		rs.rules = append(rs.rules, cr)
	}
	return rs
}

func compileRule(rc *RuleConfig) (compiledRule, error) {
	cr := compiledRule{value: rc.Value, enabled: true, src: rc}
	switch normalize(rc.Match) {
	case "process":
		cr.kind = MatchProcess
	case "title":
		cr.kind = MatchTitle
	case "class":
		cr.kind = MatchClass
	default:
		return cr, fmt.Errorf("unknown match kind %q", rc.Match)
	}
	switch normalize(rc.Strategy) {
	case "", "equals":
		cr.strategy = StrategyEquals
	case "contains":
		cr.strategy = StrategyContains
	case "regex":
		cr.strategy = StrategyRegex
		re, err := regexp.Compile(rc.Value)
		if err != nil {
			return cr, fmt.Errorf("rule regex: %w", err)
		}
		cr.re = re
	default:
		return cr, fmt.Errorf("unknown match strategy %q", rc.Strategy)
	}
	if rc.Enabled != nil {
		cr.enabled = *rc.Enabled
	}
	return cr, nil
}

// Global returns the resolved global configuration.
func (rs *Ruleset) Global() Resolved {
	return rs.global
}

// Match evaluates the rules against a window in order. The first matching
// rule decides; later matches are never consulted.
func (rs *Ruleset) Match(info WindowInfo) Decision {
	for i := range rs.rules {
		cr := &rs.rules[i]
		if !cr.matches(info) {
			continue
		}
		if !cr.enabled {
			return Decision{Enabled: false, Config: rs.global}
		}
		return Decision{Enabled: true, Config: rs.applyOverrides(cr.src)}
	}
	return Decision{Enabled: true, Config: rs.global}
}

func (cr *compiledRule) matches(info WindowInfo) bool {
	var subject string
	switch cr.kind {
	case MatchProcess:
		subject = info.Process
	case MatchTitle:
		subject = info.Title
	case MatchClass:
		subject = info.Class
	}
	switch cr.strategy {
	case StrategyEquals:
		return subject == cr.value
	case StrategyContains:
		return strings.Contains(subject, cr.value)
	case StrategyRegex:
		return cr.re.MatchString(subject)
	}
	return false
}

// applyOverrides layers the rule's set fields over the resolved global
// configuration. Invalid override values fall back to the global value
// for that field, same as global resolution.
func (rs *Ruleset) applyOverrides(rc *RuleConfig) Resolved {
	r := rs.global
	if rc.BorderWidth != nil {
		if *rc.BorderWidth >= 0 {
			r.Style.Width = *rc.BorderWidth
		} else {
			rs.log.WithField("border_width", *rc.BorderWidth).Warn("negative rule border_width, keeping global")
		}
	}
	if rc.BorderOffset != nil {
		r.Style.Offset = *rc.BorderOffset
	}
	if rc.BorderStyle != "" {
		corner, radius, err := parseCorner(rc.BorderStyle, rc.BorderRadius)
		if err != nil {
			rs.log.WithError(err).Warn("invalid rule border_style, keeping global")
		} else {
			r.Style.Corner = corner
			r.Style.Radius = radius
		}
	} else if rc.BorderRadius != nil {
		r.Style.Corner = geometry.CornerCustom
		r.Style.Radius = *rc.BorderRadius
	}
	if rc.ActiveColor != nil {
		if brush, err := resolveBrush(rc.ActiveColor); err != nil {
			rs.log.WithError(err).Warn("invalid rule active_color, keeping global")
		} else {
			r.Active.Brush = brush
		}
	}
	if rc.InactiveColor != nil {
		if brush, err := resolveBrush(rc.InactiveColor); err != nil {
			rs.log.WithError(err).Warn("invalid rule inactive_color, keeping global")
		} else {
			r.Inactive.Brush = brush
		}
	}
	if rc.InitializeDelay != nil && *rc.InitializeDelay >= 0 {
		r.InitializeDelay = time.Duration(*rc.InitializeDelay) * time.Millisecond
	}
	if rc.RestoreDelay != nil && *rc.RestoreDelay >= 0 {
		r.RestoreDelay = time.Duration(*rc.RestoreDelay) * time.Millisecond
	}
	if rc.Animations != nil {
		if rc.Animations.FPS != nil && *rc.Animations.FPS > 0 {
			r.FPS = *rc.Animations.FPS
		}
		r.Active.Animations = resolveAnimationList(rs.log, rc.Animations.Active)
		r.Inactive.Animations = resolveAnimationList(rs.log, rc.Animations.Inactive)
	}
	if rc.Effects != nil {
		r.Active.Effects = resolveEffectList(rs.log, rc.Effects.Active)
		r.Inactive.Effects = resolveEffectList(rs.log, rc.Effects.Inactive)
	}
	return r
}

func resolveAnimationList(log *logrus.Logger, list []AnimationConfig) []animation.Spec {
	var out []animation.Spec
	for _, ac := range list {
		as, err := resolveAnimation(ac)
		if err != nil {
			log.WithError(err).Warn("skipping invalid rule animation")
			continue
		}
		out = append(out, as)
	}
	return out
}

func resolveEffectList(log *logrus.Logger, list []EffectConfig) []render.Effect {
	var out []render.Effect
	for _, ec := range list {
		eff, err := resolveEffect(ec)
		if err != nil {
			log.WithError(err).Warn("skipping invalid rule effect")
			continue
		}
		out = append(out, eff)
	}
	return out
}
