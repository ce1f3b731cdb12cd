// Package adapter provides thin adapters over the core engine.
// The CLI adapter handles prompting and rendering only; all logic is in the engine.
package adapter

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"bakery-cost/core/editor"
	"bakery-cost/core/engine"
	"bakery-cost/core/output"
	"bakery-cost/core/types"
	"bakery-cost/core/ui"
	"bakery-cost/internal/errors"
	"bakery-cost/internal/logging"
)

// ErrCancelled is returned when input ends in the middle of a registration
var ErrCancelled = stderrors.New("registration cancelled")

// CLIAdapter is a THIN wrapper around the core engine.
type CLIAdapter struct {
	engine  *engine.Engine
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	format  output.Format
	noColor bool
}

// NewCLIAdapter creates a new CLI adapter
func NewCLIAdapter(eng *engine.Engine) *CLIAdapter {
	return &CLIAdapter{
		engine: eng,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
		format: output.FormatTable,
	}
}

// SetInput sets the prompt input
func (a *CLIAdapter) SetInput(r io.Reader) {
	a.in = bufio.NewReader(r)
}

// SetOutput sets the output writer
func (a *CLIAdapter) SetOutput(w io.Writer) {
	a.out = w
}

// SetErrorOutput sets where warnings go
func (a *CLIAdapter) SetErrorOutput(w io.Writer) {
	a.errOut = w
}

// SetFormat sets the default output format
func (a *CLIAdapter) SetFormat(f output.Format) {
	a.format = f
}

// SetNoColor disables styling
func (a *CLIAdapter) SetNoColor(noColor bool) {
	a.noColor = noColor
}

func (a *CLIAdapter) screen() *ui.Writer {
	return ui.NewWriter(a.out, a.noColor)
}

func (a *CLIAdapter) warnings() *ui.Writer {
	return ui.NewWriter(a.errOut, a.noColor)
}

// Calculate aggregates the request, renders the report and prints every
// collected error as a warning. An empty format uses the adapter default.
func (a *CLIAdapter) Calculate(ctx context.Context, req *types.AggregationRequest, format output.Format) (*output.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format == "" {
		format = a.format
	}
	f, err := output.ForOptions(format, a.noColor)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid output format", err)
	}

	res := a.engine.Aggregate(req)
	report := output.NewReport(req, res)

	if err := f.Render(a.out, report); err != nil {
		return report, errors.Wrap(errors.TypeInternal, "cannot render report", err)
	}

	w := a.warnings()
	for _, e := range res.Errors {
		w.Warning("%s", describe(e))
	}
	if res.HasErrors() {
		logging.Debug("aggregation finished with errors", zap.Int("errors", len(res.Errors)))
	}
	return report, nil
}

// PromptQuantities asks for a quantity per product in book order.
// A blank answer or end of input keeps 0.
func (a *CLIAdapter) PromptQuantities(ctx context.Context) (*types.AggregationRequest, error) {
	req := types.NewAggregationRequest()
	w := a.screen()
	eof := false
	for _, product := range a.engine.Products() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if eof {
			req.Set(product, "")
			continue
		}
		w.Prompt("%s [0]:", product)
		answer := a.readLine()
		if answer == nil {
			w.Println("")
			eof = true
			req.Set(product, "")
			continue
		}
		req.Set(product, *answer)
	}
	return req, nil
}

// AddProduct registers a product from prompts: a name, then
// ingredient/amount pairs until a blank answer or a sentinel. A bad amount
// is reported and asked again. End of input cancels the registration.
func (a *CLIAdapter) AddProduct(ctx context.Context) (*editor.Committed, error) {
	w := a.screen()
	opts := a.engine.Options()

	w.Prompt("Product name:")
	name := a.readLine()
	if name == nil {
		w.Println("")
		return nil, ErrCancelled
	}
	pending, err := a.engine.NewProduct(*name)
	if err != nil {
		return nil, err
	}

	finish := describeSentinels(opts.Sentinels)
	for {
		if err := ctx.Err(); err != nil {
			pending.Cancel()
			return nil, err
		}
		w.Prompt("Ingredient for %s (%s to finish):", pending.Product(), finish)
		answer := a.readLine()
		switch editor.ClassifyIngredientInput(answer, opts.Sentinels) {
		case editor.StepCancelled:
			w.Println("")
			pending.Cancel()
			return nil, ErrCancelled
		case editor.StepDone:
			return a.commit(ctx, pending)
		}

		if err := a.promptAmount(pending, *answer); err != nil {
			pending.Cancel()
			return nil, err
		}
	}
}

func (a *CLIAdapter) promptAmount(pending *editor.Pending, ingredient string) error {
	w := a.screen()
	unit := a.engine.Options().MassUnit
	for {
		w.Prompt("Amount of %s per unit (%s):", strings.TrimSpace(ingredient), unit)
		amount := a.readLine()
		if amount == nil {
			w.Println("")
			return ErrCancelled
		}
		err := pending.AddIngredientLine(ingredient, *amount)
		if err == nil {
			return nil
		}
		if errors.IsType(err, errors.TypeEmptyName) {
			w.Error("%s", describe(err))
			return nil
		}
		if !errors.IsType(err, errors.TypeInvalidAmount) {
			return err
		}
		w.Error("%s; enter a non-negative number", describe(err))
	}
}

func (a *CLIAdapter) commit(ctx context.Context, pending *editor.Pending) (*editor.Committed, error) {
	w := a.screen()
	c, err := pending.Finish(ctx)
	if err != nil && !errors.IsType(err, errors.TypePersistence) {
		return nil, err
	}

	verb := "Added"
	if c.Replaced {
		verb = "Replaced"
	}
	w.Success("%s %s (row %d, %d ingredients)", verb, c.Product, c.Index+1, c.Recipe.Len())

	if err != nil {
		a.warnings().Warning("%s; %s is kept for this session only", describe(err), c.Product)
		return &c, err
	}
	return &c, nil
}

// readLine returns nil at end of input
func (a *CLIAdapter) readLine() *string {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return nil
	}
	line = strings.TrimRight(line, "\r\n")
	return &line
}

func describeSentinels(sentinels []string) string {
	quoted := make([]string, 0, len(sentinels)+1)
	quoted = append(quoted, "blank")
	for _, s := range sentinels {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return strings.Join(quoted, " or ")
}

// describe drops the type tag for terminal output
func describe(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
