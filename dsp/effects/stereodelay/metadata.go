package stereodelay

import (
	"fmt"
	"strings"

	"github.com/cwbudde/gema/dsp/filter/feedback"
)

var paramNames = [NumParams]string{
	"Time L",
	"Time R",
	"Tempo Sync",
	"Feedback",
	"Wet",
	"HP Filter",
	"LP Filter",
	"Ping-Pong",
	"Division",
}

// paramKeys are the short, command-line friendly parameter names.
var paramKeys = [NumParams]string{
	"time-l",
	"time-r",
	"sync",
	"feedback",
	"wet",
	"hpf",
	"lpf",
	"ping-pong",
	"division",
}

// Name returns the display name of the parameter, or "" for an unknown index.
func Name(index Param) string {
	if !index.Valid() {
		return ""
	}
	return paramNames[index]
}

// Key returns the short name of the parameter, or "" for an unknown index.
func Key(index Param) string {
	if !index.Valid() {
		return ""
	}
	return paramKeys[index]
}

// Unit returns the unit label shown next to the parameter value.
func Unit(index Param) string {
	switch index {
	case ParamTimeL, ParamTimeR:
		return "ms"
	case ParamFeedback, ParamWet:
		return "%"
	default:
		return ""
	}
}

// Display formats the current value of the parameter at index. The high-pass
// frequency reflects the applied coefficient, which stops at
// feedback.MaxHighPassCoefficient (380 Hz).
func Display(p *Params, index Param) string {
	switch index {
	case ParamTimeL:
		return fmt.Sprintf("%.0f ms", p.TimeL*2000)
	case ParamTimeR:
		return fmt.Sprintf("%.0f ms", p.TimeR*2000)
	case ParamSync:
		return onOff(p.Sync)
	case ParamFeedback:
		return fmt.Sprintf("%.1f %%", p.Feedback*100)
	case ParamWet:
		return fmt.Sprintf("%.1f %%", p.Wet*100)
	case ParamHighPass:
		return fmt.Sprintf("%.0f Hz", 20+feedback.HighPassCoefficient(p.HighPass)*800)
	case ParamLowPass:
		return fmt.Sprintf("%.0f Hz", 1000+p.LowPass*19000)
	case ParamPingPong:
		return onOff(p.PingPong)
	case ParamDivision:
		return p.Division.String()
	default:
		return ""
	}
}

// ParseParam resolves a parameter from its display name or short name.
// Case, spaces, dashes and underscores are ignored.
func ParseParam(name string) (Param, bool) {
	want := foldName(name)
	if want == "" {
		return 0, false
	}
	for i := Param(0); i < NumParams; i++ {
		if foldName(paramNames[i]) == want || foldName(paramKeys[i]) == want {
			return i, true
		}
	}
	return 0, false
}

func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
