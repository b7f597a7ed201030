package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/gema/dsp/core"
	"github.com/cwbudde/gema/dsp/effects/stereodelay"
	"github.com/cwbudde/gema/dsp/tempo"
)

type assignment struct {
	param stereodelay.Param
	value float64
}

// assignments collects repeated -set flags.
type assignments []assignment

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, x := range *a {
		parts[i] = fmt.Sprintf("%s=%g", stereodelay.Key(x.param), x.value)
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p, ok := stereodelay.ParseParam(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	v, err := parseValue(p, raw)
	if err != nil {
		return err
	}
	*a = append(*a, assignment{param: p, value: v})
	return nil
}

// apply publishes all assignments as one snapshot.
func (a assignments) apply(e *stereodelay.Engine) {
	if len(a) == 0 {
		return
	}
	e.Update(func(p *stereodelay.Params) {
		for _, x := range a {
			p.Set(x.param, x.value)
		}
	})
}

// parseValue converts user input to a normalized parameter value. Besides
// plain numbers in [0, 1] it accepts on/off for switches, division labels
// such as 1/8T, milliseconds for the times and percentages for the levels.
func parseValue(p stereodelay.Param, raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch p {
	case stereodelay.ParamSync, stereodelay.ParamPingPong:
		switch s {
		case "on", "true", "yes":
			return 1, nil
		case "off", "false", "no":
			return 0, nil
		}
	case stereodelay.ParamDivision:
		if d, ok := tempo.ParseDivision(strings.ToUpper(strings.TrimSpace(raw))); ok {
			return d.Normalized(), nil
		}
	case stereodelay.ParamTimeL, stereodelay.ParamTimeR:
		if ms, ok := strings.CutSuffix(s, "ms"); ok {
			v, err := parseNumber(ms)
			if err != nil {
				return 0, err
			}
			return v / (tempo.MaxManualSeconds * 1000), nil
		}
	case stereodelay.ParamFeedback, stereodelay.ParamWet:
		if pct, ok := strings.CutSuffix(s, "%"); ok {
			v, err := parseNumber(pct)
			if err != nil {
				return 0, err
			}
			return v / 100, nil
		}
	}

	return parseNumber(s)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	if !core.IsFinite(v) {
		return 0, fmt.Errorf("value must be finite: %q", s)
	}
	return v, nil
}
