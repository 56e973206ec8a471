package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorRole tells a normalizer which fallback to use when a value cannot
// be converted.
type ColorRole int

const (
	RoleForeground ColorRole = iota
	RoleBackground
)

const (
	fallbackBackground = "rgb(255, 255, 255)"
	fallbackForeground = "rgb(0, 0, 0)"
)

// ColorNormalizer rewrites CSS color values the PDF backend cannot paint
// into device RGB.
type ColorNormalizer interface {
	Normalize(value string, role ColorRole) string
}

// DeviceRGBNormalizer converts oklch(), oklab(), lab(), lch() and color()
// functions to rgb()/rgba(). A function whose conversion fails is replaced by
// white (backgrounds) or black (foregrounds); the rest of the value is kept.
type DeviceRGBNormalizer struct{}

var colorFuncRe = regexp.MustCompile(`(?i)\b(oklch|oklab|lab|lch|color)\(([^()]*)\)`)

func (DeviceRGBNormalizer) Normalize(value string, role ColorRole) string {
	return colorFuncRe.ReplaceAllStringFunc(value, func(m string) string {
		parts := colorFuncRe.FindStringSubmatch(m)
		rgb, err := convertColorFunc(strings.ToLower(parts[1]), parts[2])
		if err != nil {
			if role == RoleBackground {
				return fallbackBackground
			}
			return fallbackForeground
		}
		return rgb
	})
}

// NormalizeDeclarations applies n to every value of a CSS declaration list
// such as "color: oklch(...); border-bottom: 1px solid oklch(...)". Values
// of background properties use the background fallback.
func NormalizeDeclarations(n ColorNormalizer, css string) string {
	if n == nil || strings.TrimSpace(css) == "" {
		return css
	}
	decls := strings.Split(css, ";")
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		prop, val, ok := strings.Cut(d, ":")
		if !ok {
			if strings.TrimSpace(d) != "" {
				out = append(out, strings.TrimSpace(d))
			}
			continue
		}
		prop = strings.TrimSpace(prop)
		role := RoleForeground
		if strings.HasPrefix(strings.ToLower(prop), "background") {
			role = RoleBackground
		}
		out = append(out, prop+": "+n.Normalize(strings.TrimSpace(val), role))
	}
	return strings.Join(out, "; ")
}

func convertColorFunc(fn, args string) (string, error) {
	comps, alpha, err := splitColorArgs(args)
	if err != nil {
		return "", err
	}
	if len(comps) != 3 {
		return "", fmt.Errorf("%s(): want 3 components, got %d", fn, len(comps))
	}
	var c colorful.Color
	switch fn {
	case "oklch":
		l, err1 := parseComponent(comps[0], 1)
		ch, err2 := parseComponent(comps[1], 0.4)
		h, err3 := parseHue(comps[2])
		if err := firstErr(err1, err2, err3); err != nil {
			return "", err
		}
		c = colorful.OkLch(l, ch, h)
	case "oklab":
		l, err1 := parseComponent(comps[0], 1)
		a, err2 := parseComponent(comps[1], 0.4)
		b, err3 := parseComponent(comps[2], 0.4)
		if err := firstErr(err1, err2, err3); err != nil {
			return "", err
		}
		c = colorful.OkLab(l, a, b)
	case "lab":
		l, err1 := parseComponent(comps[0], 100)
		a, err2 := parseComponent(comps[1], 125)
		b, err3 := parseComponent(comps[2], 125)
		if err := firstErr(err1, err2, err3); err != nil {
			return "", err
		}
		c = labD50(l/100, a/100, b/100)
	case "lch":
		l, err1 := parseComponent(comps[0], 100)
		ch, err2 := parseComponent(comps[1], 150)
		h, err3 := parseHue(comps[2])
		if err := firstErr(err1, err2, err3); err != nil {
			return "", err
		}
		c = labD50(colorful.HclToLab(h, ch/100, l/100))
	default:
		return "", fmt.Errorf("%s(): unsupported color function", fn)
	}
	r, g, b := c.Clamped().RGB255()
	if alpha < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
}

// CSS lab() and lch() are relative to D50; colorful's sRGB matrix expects
// D65, so XYZ goes through the Bradford adaptation first.
var bradfordD50ToD65 = [3][3]float64{
	{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
	{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
	{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
}

func labD50(l, a, b float64) colorful.Color {
	x, y, z := colorful.LabToXyzWhiteRef(l, a, b, colorful.D50)
	m := bradfordD50ToD65
	return colorful.Xyz(
		m[0][0]*x+m[0][1]*y+m[0][2]*z,
		m[1][0]*x+m[1][1]*y+m[1][2]*z,
		m[2][0]*x+m[2][1]*y+m[2][2]*z,
	)
}

func splitColorArgs(args string) ([]string, float64, error) {
	alpha := 1.0
	main, alphaPart, hasAlpha := strings.Cut(args, "/")
	if hasAlpha {
		a, err := parseComponent(strings.TrimSpace(alphaPart), 1)
		if err != nil {
			return nil, 0, err
		}
		alpha = math.Max(0, math.Min(1, a))
	}
	return strings.Fields(strings.ReplaceAll(main, ",", " ")), alpha, nil
}

// parseComponent parses a number or percentage; pct100 is the value that
// 100% maps to.
func parseComponent(s string, pct100 float64) (float64, error) {
	if strings.EqualFold(s, "none") {
		return 0, nil
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * pct100, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseHue(s string) (float64, error) {
	if strings.EqualFold(s, "none") {
		return 0, nil
	}
	s = strings.TrimSuffix(strings.ToLower(s), "deg")
	if turns, ok := strings.CutSuffix(s, "turn"); ok {
		v, err := strconv.ParseFloat(turns, 64)
		return v * 360, err
	}
	return strconv.ParseFloat(s, 64)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
