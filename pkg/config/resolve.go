package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/animation"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
)

// Built-in defaults used when the file omits or mangles a field.
const (
	DefaultBorderWidth   = 2.0
	DefaultBorderOffset  = 0.0
	DefaultFPS           = 60
	DefaultActiveColor   = "#89b4fa"
	DefaultInactiveColor = "#585b70"
)

// StateStyle is the appearance of one focus state.
type StateStyle struct {
	Brush      render.Brush
	Animations []animation.Spec
	Effects    []render.Effect
}

// Resolved is the fully validated configuration consumed by border
// instances. All durations are concrete and all colors are parsed.
type Resolved struct {
	Style           geometry.Style
	Active          StateStyle
	Inactive        StateStyle
	FPS             int
	InitializeDelay time.Duration
	RestoreDelay    time.Duration
}

// Resolve validates the global section field by field. A field that fails
// validation logs a warning and falls back to its built-in default; the
// rest of the configuration is unaffected.
func (g *GlobalConfig) Resolve(log *logrus.Logger) Resolved {
	r := Resolved{
		Style: geometry.Style{
			Width:  DefaultBorderWidth,
			Offset: DefaultBorderOffset,
			Corner: geometry.CornerAuto,
			Scale:  1,
		},
		FPS: DefaultFPS,
	}
	if g.BorderWidth != nil {
		if *g.BorderWidth >= 0 {
			r.Style.Width = *g.BorderWidth
		} else {
			log.WithField("border_width", *g.BorderWidth).Warn("negative border_width, using default")
		}
	}
	if g.BorderOffset != nil {
		r.Style.Offset = *g.BorderOffset
	}
	if g.BorderStyle != "" {
		corner, radius, err := parseCorner(g.BorderStyle, g.BorderRadius)
		if err != nil {
			log.WithError(err).Warn("invalid border_style, using auto")
		} else {
			r.Style.Corner = corner
			r.Style.Radius = radius
		}
	} else if g.BorderRadius != nil {
		r.Style.Corner = geometry.CornerCustom
		r.Style.Radius = *g.BorderRadius
	}
	if g.Animations.FPS != nil {
		if *g.Animations.FPS > 0 {
			r.FPS = *g.Animations.FPS
		} else {
			log.WithField("fps", *g.Animations.FPS).Warn("fps must be positive, using default")
		}
	}
	if g.InitializeDelay != nil && *g.InitializeDelay >= 0 {
		r.InitializeDelay = time.Duration(*g.InitializeDelay) * time.Millisecond
	}
	if g.RestoreDelay != nil && *g.RestoreDelay >= 0 {
		r.RestoreDelay = time.Duration(*g.RestoreDelay) * time.Millisecond
	}

	r.Active = resolveState(log, "active", g.ActiveColor, DefaultActiveColor, g.Animations.Active, g.Effects.Active)
	r.Inactive = resolveState(log, "inactive", g.InactiveColor, DefaultInactiveColor, g.Animations.Inactive, g.Effects.Inactive)
	return r
}

func resolveState(log *logrus.Logger, name string, spec *ColorSpec, fallback string, anims []AnimationConfig, effects []EffectConfig) StateStyle {
	s := StateStyle{Brush: mustSolid(fallback)}
	if spec != nil {
		brush, err := resolveBrush(spec)
		if err != nil {
			log.WithError(err).WithField("state", name).Warn("invalid color, using default")
		} else {
			s.Brush = brush
		}
	}
	for _, ac := range anims {
		as, err := resolveAnimation(ac)
		if err != nil {
			log.WithError(err).WithField("state", name).Warn("skipping invalid animation")
			continue
		}
		s.Animations = append(s.Animations, as)
	}
	for _, ec := range effects {
		eff, err := resolveEffect(ec)
		if err != nil {
			log.WithError(err).WithField("state", name).Warn("skipping invalid effect")
			continue
		}
		s.Effects = append(s.Effects, eff)
	}
	return s
}

func mustSolid(hex string) render.Brush {
	c, err := render.ParseColor(hex)
	if err != nil {
		return render.SolidBrush(render.ColorWhite)
	}
	return render.SolidBrush(c)
}

// resolveBrush converts a color spec into a brush.
func resolveBrush(spec *ColorSpec) (render.Brush, error) {
	if spec.Gradient == nil {
		c, err := render.ParseColor(spec.Solid)
		if err != nil {
			return render.Brush{}, err
		}
		return render.SolidBrush(c), nil
	}
	g := spec.Gradient
	if len(g.Colors) < 2 {
		return render.Brush{}, fmt.Errorf("gradient needs at least two colors, got %d", len(g.Colors))
	}
	stops := make([]render.GradientStop, len(g.Colors))
	for i, hex := range g.Colors {
		c, err := render.ParseColor(hex)
		if err != nil {
			return render.Brush{}, fmt.Errorf("gradient color %d: %w", i, err)
		}
		stops[i] = render.GradientStop{
			Position: float64(i) / float64(len(g.Colors)-1),
			Color:    c,
		}
	}
	if g.Start != nil && g.End != nil {
		start := geometry.Offset{X: g.Start[0], Y: g.Start[1]}
		end := geometry.Offset{X: g.End[0], Y: g.End[1]}
		return render.GradientBrush(stops, start, end), nil
	}
	angle := 180.0
	if g.Angle != nil {
		angle = *g.Angle
	}
	return render.GradientBrushAngle(stops, angle), nil
}

// resolveAnimation parses one animation entry. Unset durations take the
// kind's default; unset easing is linear.
func resolveAnimation(ac AnimationConfig) (animation.Spec, error) {
	kind, err := parseAnimationKind(ac.Kind)
	if err != nil {
		return animation.Spec{}, err
	}
	easing, err := ParseEasing(ac.Easing)
	if err != nil {
		return animation.Spec{}, err
	}
	if ac.Duration < 0 {
		return animation.Spec{}, fmt.Errorf("negative duration %v", ac.Duration)
	}
	return animation.Spec{
		Kind:     kind,
		Duration: time.Duration(ac.Duration * float64(time.Millisecond)),
		Easing:   easing,
	}, nil
}

func parseAnimationKind(s string) (animation.Kind, error) {
	switch normalize(s) {
	case "fade":
		return animation.KindFade, nil
	case "spiral":
		return animation.KindSpiral, nil
	case "reversespiral":
		return animation.KindReverseSpiral, nil
	default:
		return 0, fmt.Errorf("unknown animation kind %q", s)
	}
}

// ParseEasing maps an easing name to a curve. The empty string is linear.
// Accepted: linear, ease, ease-in, ease-out, ease-in-out and
// cubic-bezier(x1, y1, x2, y2).
func ParseEasing(s string) (animation.Curve, error) {
	switch normalize(s) {
	case "", "linear":
		return animation.Linear, nil
	case "ease":
		return animation.Ease, nil
	case "easein":
		return animation.EaseIn, nil
	case "easeout":
		return animation.EaseOut, nil
	case "easeinout":
		return animation.EaseInOut, nil
	}
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "cubic-bezier(") && strings.HasSuffix(trimmed, ")") {
		inner := trimmed[len("cubic-bezier(") : len(trimmed)-1]
		parts := strings.Split(inner, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("cubic-bezier needs 4 parameters, got %d", len(parts))
		}
		var pts [4]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("cubic-bezier parameter %d: %w", i, err)
			}
			pts[i] = v
		}
		return animation.CubicBezier(pts[0], pts[1], pts[2], pts[3]), nil
	}
	return nil, fmt.Errorf("unknown easing %q", s)
}

func resolveEffect(ec EffectConfig) (render.Effect, error) {
	var kind render.EffectKind
	switch normalize(ec.Kind) {
	case "glow":
		kind = render.EffectGlow
	case "shadow":
		kind = render.EffectShadow
	default:
		return render.Effect{}, fmt.Errorf("unknown effect kind %q", ec.Kind)
	}
	if ec.Radius < 0 {
		return render.Effect{}, fmt.Errorf("negative effect radius %v", ec.Radius)
	}
	opacity := ec.Opacity
	if opacity == 0 {
		opacity = 1
	}
	if opacity < 0 || opacity > 1 {
		return render.Effect{}, fmt.Errorf("effect opacity %v outside [0, 1]", opacity)
	}
	eff := render.Effect{
		Kind:        kind,
		Radius:      ec.Radius,
		Opacity:     opacity,
		Translation: geometry.Offset{X: ec.Translation[0], Y: ec.Translation[1]},
	}
	if ec.Color != "" {
		c, err := render.ParseColor(ec.Color)
		if err != nil {
			return render.Effect{}, fmt.Errorf("effect color: %w", err)
		}
		eff.Color = c
	}
	return eff, nil
}

// parseCorner maps a border_style name to a corner style. The radius
// argument applies only to the custom style.
func parseCorner(s string, radius *float64) (geometry.CornerStyle, float64, error) {
	switch normalize(s) {
	case "round":
		return geometry.CornerRound, 0, nil
	case "smallround":
		return geometry.CornerSmallRound, 0, nil
	case "square":
		return geometry.CornerSquare, 0, nil
	case "auto":
		return geometry.CornerAuto, 0, nil
	case "radius", "custom":
		if radius == nil || *radius < 0 {
			return 0, 0, fmt.Errorf("border_style %q requires a non-negative border_radius", s)
		}
		return geometry.CornerCustom, *radius, nil
	default:
		return 0, 0, fmt.Errorf("unknown border_style %q", s)
	}
}

// normalize lowercases and strips separators so "ease-in-out",
// "EaseInOut" and "ease_in_out" all compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
