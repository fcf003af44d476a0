// Package app runs caliper's command-line commands.
//
// Run loads the configuration, installs the logger, and dispatches one
// command. Commands parse measurements written as value[±uncertainty][unit]
// ("10.5±0.005g", "4.00+-0.02 m", "2") and print results through a
// render.Renderer.
//
//	simplify <unit expression>
//	convert <value[±unc]unit> <unit>
//	calc <operand> [<op> <operand> | ^ <n> | sqrt]...
//	average|stddev|sum <file> [set...]
//	average|stddev|sum <operand>...
//	tolerance <operand> <target> <tolerance> [name]
//	themes
//	repl
//
// calc evaluates left to right. Operators are + - * / (x and × also
// multiply, ÷ divides). Aggregation commands read dataset files when the
// first argument ends in .toml, .yaml or .yml. repl opens an interactive
// session where each line is a command, or calc arguments when the first
// word is not a command name.
//
// Run returns ErrUsage for bad invocations and ErrOutOfTolerance when a
// tolerance check fails, so the caller can choose exit codes.
package app
