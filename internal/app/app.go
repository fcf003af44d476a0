package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/config"
	"github.com/five82/caliper/internal/dataset"
	"github.com/five82/caliper/internal/logging"
	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/prefs"
	"github.com/five82/caliper/internal/render"
	"github.com/five82/caliper/internal/stats"
	"github.com/five82/caliper/internal/ui"
	"github.com/five82/caliper/internal/unit"
)

var (
	// ErrUsage is returned for a missing or unknown command or bad arguments.
	ErrUsage = errors.New("usage")
	// ErrOutOfTolerance is returned by the tolerance command when the
	// measurement falls outside the band.
	ErrOutOfTolerance = errors.New("out of tolerance")
)

// Options configure a caliper invocation.
type Options struct {
	ConfigPath string
	PrefsPath  string // interactive session state, prefs.DefaultPath when empty
	Theme      string // overrides the configured theme when set
	Plain      bool
	Stdout     io.Writer
	Stderr     io.Writer
}

type session struct {
	cfg       config.Config
	theme     string
	themeSet  bool // theme came from Options.Theme
	prefsPath string
	out       io.Writer
	r         render.Renderer
	opts      []measurement.Option
}

type command struct {
	usage string
	run   func(*session, []string) error
}

// commands is filled in init because the repl command evaluates lines
// through the same table.
var commands map[string]command

func init() {
	commands = map[string]command{
		"simplify":  {usage: "simplify <unit expression>", run: runSimplify},
		"convert":   {usage: "convert <value[±unc]unit> <unit>", run: runConvert},
		"calc":      {usage: "calc <operand> [<op> <operand> | ^ <n> | sqrt]...", run: runCalc},
		"average":   {usage: "average <file> [set...] | average <operand>...", run: aggregate(stats.Average, "mean")},
		"stddev":    {usage: "stddev <file> [set...] | stddev <operand>...", run: aggregate(stats.AverageWithStdDev, "mean ± sd")},
		"sum":       {usage: "sum <file> [set...] | sum <operand>...", run: aggregate(stats.Sum, "sum")},
		"tolerance": {usage: "tolerance <operand> <target> <tolerance> [name]", run: runTolerance},
		"themes":    {usage: "themes", run: runThemes},
		"repl":      {usage: "repl", run: runREPL},
	}
}

// Usage returns the command summary.
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(commands[name].usage)
		b.WriteString("\n")
	}
	return b.String()
}

// Run loads configuration, sets up logging and executes one command.
func Run(opts Options, args []string) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.LoggingConfig(), opts.Stderr)

	theme := cfg.Theme
	if strings.TrimSpace(opts.Theme) != "" {
		theme = opts.Theme
	}
	logger := logging.Component("app")
	if !render.HasTheme(theme) {
		logger.Warn().Str("theme", theme).Msg("unknown theme, using default")
	}
	logger.Debug().
		Str("policy", cfg.Policy).
		Str("arithmetic", cfg.ArithmeticStrategy().String()).
		Int("decimals", cfg.Decimals).
		Str("theme", theme).
		Msg("config loaded")

	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	s := &session{
		cfg:       cfg,
		theme:     theme,
		themeSet:  strings.TrimSpace(opts.Theme) != "",
		prefsPath: opts.PrefsPath,
		out:       opts.Stdout,
		r:         render.New(theme, opts.Plain),
		opts:      cfg.MeasurementOptions(),
	}
	if err := cmd.run(s, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w: %s", err, cmd.usage)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func (s *session) println(line string) {
	fmt.Fprintln(s.out, line)
}

func runSimplify(s *session, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	simplified := unit.Simplify(strings.Join(args, " "))
	if simplified == "" {
		simplified = "1"
	}
	s.println(simplified)
	return nil
}

func runConvert(s *session, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	m, err := parseOperand(args[0], s.opts...)
	if err != nil {
		return err
	}
	out, err := m.ConvertTo(unit.Resolve(args[1]))
	if err != nil {
		return err
	}
	s.println(s.r.Measurement("", out))
	return nil
}

func runCalc(s *session, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	acc, err := parseOperand(args[0], s.opts...)
	if err != nil {
		return err
	}

	for i := 1; i < len(args); i++ {
		op := args[i]
		if op == "sqrt" {
			if acc, err = acc.Sqrt(); err != nil {
				return err
			}
			continue
		}
		if i+1 >= len(args) {
			return fmt.Errorf("%w: %q needs an operand", ErrUsage, op)
		}
		i++
		arg := args[i]

		switch op {
		case "^", "**":
			exp, perr := strconv.ParseFloat(arg, 64)
			if perr != nil {
				return fmt.Errorf("invalid exponent %q: %w", arg, perr)
			}
			acc, err = acc.Pow(exp)
		case "+", "-", "*", "x", "×", "/", "÷":
			var rhs measurement.Measurement
			if rhs, err = parseOperand(arg, s.opts...); err != nil {
				return err
			}
			acc, err = apply(acc, op, rhs)
		default:
			return fmt.Errorf("%w: unknown operator %q", ErrUsage, op)
		}
		if err != nil {
			return err
		}
	}

	s.println(s.r.Measurement("", acc))
	return nil
}

func apply(a measurement.Measurement, op string, b measurement.Measurement) (measurement.Measurement, error) {
	switch op {
	case "+":
		return a.Add(b)
	case "-":
		return a.Sub(b)
	case "/", "÷":
		return a.Div(b)
	default:
		return a.Mul(b), nil
	}
}

type aggregator func([]measurement.Measurement) (measurement.Measurement, error)

func aggregate(fn aggregator, label string) func(*session, []string) error {
	return func(s *session, args []string) error {
		if len(args) == 0 {
			return ErrUsage
		}
		if !isDatasetPath(args[0]) {
			ms := make([]measurement.Measurement, 0, len(args))
			for _, arg := range args {
				m, err := parseOperand(arg, s.opts...)
				if err != nil {
					return err
				}
				ms = append(ms, m)
			}
			out, err := fn(ms)
			if err != nil {
				return err
			}
			s.println(s.r.Measurement(label, out))
			return nil
		}

		f, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		names := args[1:]
		if len(names) == 0 {
			names = f.Names()
		}
		for _, name := range names {
			ms, err := f.Measurements(name, s.opts...)
			if err != nil {
				return err
			}
			out, err := fn(ms)
			if err != nil {
				return fmt.Errorf("set %q: %w", name, err)
			}
			s.println(s.r.Block(name,
				s.r.Field("readings", strconv.Itoa(len(ms))),
				s.r.Measurement(label, out),
			))
		}
		return nil
	}
}

func isDatasetPath(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".toml", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func runTolerance(s *session, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	m, err := parseOperand(args[0], s.opts...)
	if err != nil {
		return err
	}
	target, err := decimal.NewFromString(strings.TrimSpace(args[1]))
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", args[1], err)
	}
	tolerance, err := decimal.NewFromString(strings.TrimSpace(args[2]))
	if err != nil {
		return fmt.Errorf("invalid tolerance %q: %w", args[2], err)
	}
	name := ""
	if len(args) == 4 {
		name = args[3]
	}

	v := measurement.CheckTolerance(name, m, target, tolerance)
	s.println(s.r.Verdict(v))
	if !v.Within {
		return ErrOutOfTolerance
	}
	return nil
}

func runThemes(s *session, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	for _, name := range render.ThemeNames() {
		s.println(name)
	}
	return nil
}

func runREPL(s *session, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	logger := logging.Component("repl")
	saved, _ := prefs.Load(s.prefsPath)
	theme := s.theme
	if !s.themeSet && render.HasTheme(saved.Theme) {
		theme = saved.Theme
	}

	final, err := ui.Run(ui.Options{Eval: s.evalLine, ThemeName: theme, History: saved.History})
	if err != nil {
		return err
	}
	if err := prefs.Save(s.prefsPath, prefs.Prefs{Theme: final.ThemeName(), History: final.History()}); err != nil {
		logger.Warn().Err(err).Msg("failed to save session state")
	}
	return nil
}

// evalLine runs one interactive line and returns its plain output. A line
// that does not start with a command name is evaluated as calc arguments.
func (s *session) evalLine(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	var buf strings.Builder
	sub := &session{
		cfg:   s.cfg,
		theme: s.theme,
		out:   &buf,
		r:     render.New(s.theme, true),
		opts:  s.opts,
	}

	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok || name == "repl" {
		cmd, args = commands["calc"], fields
	}
	if err := cmd.run(sub, args); err != nil {
		if errors.Is(err, ErrOutOfTolerance) {
			return buf.String(), nil
		}
		if errors.Is(err, ErrUsage) {
			return buf.String(), fmt.Errorf("%w: %s", err, cmd.usage)
		}
		return buf.String(), err
	}
	return buf.String(), nil
}
