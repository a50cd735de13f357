package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/log"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

const defaultAgeMonths = 12

// App is the interactive console front-end over the projection service
type App struct {
	service  *projection.ProjectionService
	prompter *Prompter
	out      io.Writer
	logger   *log.Logger
}

// NewApp creates a console App reading answers from in and writing to out
func NewApp(service *projection.ProjectionService, in io.Reader, out io.Writer, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Discard()
	}
	return &App{
		service:  service,
		prompter: NewPrompter(in, out),
		out:      out,
		logger:   logger.WithComponent(log.ComponentConsole),
	}
}

// Run shows the main menu until the user exits or input ends
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "------------ Finance Calculator ------------")
		fmt.Fprintln(a.out, "1) APY Calculator")
		fmt.Fprintln(a.out, "2) Savings Calculator")
		fmt.Fprintln(a.out, "3) View previous calculations")
		fmt.Fprintln(a.out, "4) Exit")

		choice, err := a.prompter.Line("Select an option: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			err = a.APYCalculator(ctx)
		case "2":
			err = a.SavingsCalculator(ctx)
		case "3":
			err = a.ViewHistory(ctx)
		case "4", "q", "Q":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown option.")
			continue
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

// APYCalculator converts a nominal rate to APY, repeating while the user presses R
func (a *App) APYCalculator(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "------------ APY Calculator ------------")

		ratePercent, err := a.prompter.Float("Annual rate of return (percentage): ", 0)
		if err != nil {
			return err
		}
		age, err := a.prompter.Int("Age of account in months (default 12): ", defaultAgeMonths)
		if err != nil {
			return err
		}
		frequency, err := a.prompter.Frequency()
		if err != nil {
			return err
		}

		conversion, err := a.service.ConvertRate(ctx, ratePercent/100, projection.RateNominal, frequency, age)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidArgument) {
				return err
			}
			fmt.Fprintf(a.out, "Cannot calculate APY: %v\n", err)
		} else {
			fmt.Fprintln(a.out, FormatPercent(conversion.EffectiveYield))
		}

		key, err := a.prompter.Key("Press Enter to go back. (type R to run again) ")
		if err != nil {
			return err
		}
		if key != 'R' && key != 'r' {
			return nil
		}
	}
}

// SavingsCalculator runs a projection, prints its totals and optionally the breakdown
func (a *App) SavingsCalculator(ctx context.Context) error {
	fmt.Fprintln(a.out, "------------ Savings Calculator ------------")
	fmt.Fprintln(a.out, "Calculates the growth of a savings account with monthly contributions and daily-compounded interest")
	fmt.Fprintln(a.out)

	startAmount, err := a.prompter.Float("Starting Balance (in us dollars): $", 0)
	if err != nil {
		return err
	}
	ratePercent, err := a.prompter.Float("Annual rate of return (percentage): ", 0)
	if err != nil {
		return err
	}
	contribution, err := a.prompter.Float("Monthly Contribution: $", 0)
	if err != nil {
		return err
	}
	months, err := a.prompter.Int("Months (default 12): ", defaultAgeMonths)
	if err != nil {
		return err
	}
	frequency, err := a.prompter.Frequency()
	if err != nil {
		return err
	}

	run, err := a.service.RunProjection(ctx, projection.RunProjectionInput{
		StartAmount:         startAmount,
		MonthlyContribution: contribution,
		AnnualRate:          ratePercent / 100,
		CompoundFrequency:   frequency,
		DurationMonths:      months,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			fmt.Fprintf(a.out, "Cannot run projection: %v\n", err)
			return nil
		}
		a.logger.ErrorContext(ctx, "projection failed", log.FieldError, err)
		return err
	}

	PrintSummary(a.out, run.Result)
	fmt.Fprintln(a.out)

	key, err := a.prompter.Key("Would you like to see a complete breakdown? (y/n) ")
	if err != nil {
		return err
	}
	if key == 'y' || key == 'Y' {
		PrintBreakdown(a.out, run.Result.Periods)
	}
	return nil
}

// ViewHistory lists the runs of this session and shows a breakdown on request
func (a *App) ViewHistory(ctx context.Context) error {
	runs, _, err := a.service.ListRuns(ctx, 0, 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "------------ Previous Calculations ------------")
	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No calculations yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(a.out, "#%d  %s  %d months  %s  start %s  final %s  APY %s\n",
			run.RunNumber,
			run.CalculatedAt.Format("2006-01-02 15:04"),
			run.Result.NumMonths,
			run.Result.CompoundFrequency,
			FormatCurrency(run.Result.StartAmount),
			FormatCurrency(run.Result.FinalBalance),
			FormatPercent(run.Result.EffectiveAPY),
		)
	}

	runNumber, err := a.prompter.Int("Run number to view its breakdown (blank to go back): ", 0)
	if err != nil {
		return err
	}
	if runNumber == 0 {
		return nil
	}

	run, err := a.service.GetRun(ctx, runNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidArgument) {
			fmt.Fprintf(a.out, "No calculation #%d.\n", runNumber)
			return nil
		}
		return err
	}

	PrintSummary(a.out, run.Result)
	PrintBreakdown(a.out, run.Result.Periods)
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
