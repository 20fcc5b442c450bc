// Package console implements the interactive menus of the converter.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"currencyapp/internal/model"
	"currencyapp/internal/provider"
	"currencyapp/internal/service"
)

const (
	defaultWidth = 80
	appLabel     = "CurrencyApp"

	mainPointer       = "^"
	conversionPointer = ">"
)

// Options controls the layout of the console.
type Options struct {
	Width    int  // terminal width used for the footer
	Color    bool // colour output, usually only when stdout is a terminal
	ShowRate bool // print the rate used below each result
}

type menuAction int

const (
	actionReturn menuAction = iota
	actionExit
)

// Console drives the main and conversion menus over a line-based reader and writer.
type Console struct {
	svc  service.ConversionServiceInterface
	in   *lineReader
	out  io.Writer
	log  *zap.SugaredLogger
	opts Options

	title  *color.Color
	footer *color.Color
	result *color.Color
	failed *color.Color
	hint   *color.Color
}

// New creates a Console reading choices from in and writing to out.
func New(svc service.ConversionServiceInterface, in io.Reader, out io.Writer, logger *zap.SugaredLogger, opts Options) *Console {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}

	c := &Console{
		svc:    svc,
		in:     newLineReader(in),
		out:    out,
		log:    logger,
		opts:   opts,
		title:  color.New(color.Bold),
		footer: color.New(color.FgBlack, color.BgGreen),
		result: color.New(color.FgGreen, color.Bold),
		failed: color.New(color.FgRed),
		hint:   color.New(color.FgYellow),
	}
	for _, col := range []*color.Color{c.title, c.footer, c.result, c.failed, c.hint} {
		if opts.Color {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Run shows the main menu until the user exits, the input ends or ctx is done.
// Only cancellation and read failures are returned as errors.
func (c *Console) Run(ctx context.Context) error {
	defer c.in.Close()

	err := c.mainMenu(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		c.render("Currency converter", mainPointer, []string{"1) Convert", "0) Exit"})

		choice, err := c.in.ReadLine(ctx)
		if errors.Is(err, errLineTooLong) {
			c.hint.Fprintln(c.out, "Unknown option")
			continue
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			action, err := c.conversionMenu(ctx)
			if err != nil {
				return err
			}
			if action == actionExit {
				return nil
			}
		case "0":
			return nil
		default:
			c.hint.Fprintf(c.out, "Unknown option %q\n", choice)
		}
	}
}

func (c *Console) conversionMenu(ctx context.Context) (menuAction, error) {
	for {
		c.render("Convert", conversionPointer, []string{
			"1) " + model.EURToHUF.String(),
			"2) " + model.HUFToEUR.String(),
			"9) Return",
			"0) Exit",
		})

		choice, err := c.in.ReadLine(ctx)
		if errors.Is(err, errLineTooLong) {
			c.hint.Fprintln(c.out, "Unknown option")
			continue
		}
		if err != nil {
			return actionExit, err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.convert(ctx, model.EURToHUF)
		case "2":
			err = c.convert(ctx, model.HUFToEUR)
		case "9":
			return actionReturn, nil
		case "0":
			return actionExit, nil
		default:
			c.hint.Fprintf(c.out, "Unknown option %q\n", choice)
		}
		if err != nil {
			return actionExit, err
		}
	}
}

// convert prompts for an amount and prints one result line or one error line.
// Conversion failures end the current attempt only.
func (c *Console) convert(ctx context.Context, direction model.Direction) error {
	amount, err := c.promptAmount(ctx)
	if err != nil {
		return err
	}

	res, err := c.svc.Convert(ctx, direction, amount)
	switch {
	case err == nil:
		c.result.Fprintln(c.out, res.String())
		if c.opts.ShowRate {
			fmt.Fprintln(c.out, res.RateLine())
		}
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, provider.ErrFetch):
		c.failed.Fprintf(c.out, "Could not fetch exchange rates: %v\n", err)
	default:
		c.failed.Fprintf(c.out, "Conversion failed: %v\n", err)
	}
	return nil
}

// promptAmount asks until the input parses as a positive decimal.
func (c *Console) promptAmount(ctx context.Context) (decimal.Decimal, error) {
	for {
		fmt.Fprintln(c.out, "Amount: ")

		line, err := c.in.ReadLine(ctx)
		switch {
		case errors.Is(err, errLineTooLong):
			c.log.Debugw("Rejected amount input", "error", err)
		case err != nil:
			return decimal.Decimal{}, err
		default:
			amount, err := service.ParseAmount(line)
			if err == nil {
				return amount, nil
			}
			c.log.Debugw("Rejected amount input", "input", line)
		}
		c.hint.Fprintln(c.out, "Invalid amount, enter a positive number (e.g. 12.5 or 12,5)")
	}
}

func (c *Console) render(heading, pointer string, items []string) {
	fmt.Fprintln(c.out)
	c.title.Fprintln(c.out, heading)
	for _, item := range items {
		fmt.Fprintf(c.out, "  %s\n", item)
	}
	c.renderFooter()
	fmt.Fprintf(c.out, "%s ", pointer)
}

func (c *Console) renderFooter() {
	pad := c.opts.Width - len(appLabel)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(c.out, "%s%s\n", strings.Repeat(" ", pad), c.footer.Sprint(appLabel))
}
