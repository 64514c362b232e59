package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

// profileFlags describes a taxpayer on the command line, or picks one from a profile file
type profileFlags struct {
	profile       string
	regime        string
	age           int
	parentsSenior bool
	income        decimal.Decimal
	deductions    domain.TaxDeductions
}

func (pf *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&pf.profile, "profile", "", "profile to use from the file (default all)")
	fs.StringVar(&pf.regime, "regime", "", "old or new (default both)")
	fs.IntVar(&pf.age, "age", 30, "age of the taxpayer")
	fs.BoolVar(&pf.parentsSenior, "parents-senior", false, "parents are senior citizens (raises the 80D limit)")
	decimalVar(fs, &pf.income, "income", decimal.Zero, "annual gross income")
	decimalVar(fs, &pf.deductions.Section80C, "80c", decimal.Zero, "Section 80C investments")
	decimalVar(fs, &pf.deductions.Section80D, "80d", decimal.Zero, "Section 80D health insurance")
	decimalVar(fs, &pf.deductions.HRA, "hra", decimal.Zero, "exempt HRA")
	decimalVar(fs, &pf.deductions.LTA, "lta", decimal.Zero, "exempt LTA")
	decimalVar(fs, &pf.deductions.OtherDeductions, "other", decimal.Zero, "other old regime deductions")
	decimalVar(fs, &pf.deductions.EmployerNPS, "employer-nps", decimal.Zero, "employer NPS contribution, 80CCD(2)")
}

// profiles loads the profiles from the file in args, or builds one from the flags
func (pf *profileFlags) profiles(parser *config.InputParser, args []string) ([]config.Profile, error) {
	var regime *domain.TaxRegime
	if pf.regime != "" {
		r, err := domain.ParseTaxRegime(pf.regime)
		if err != nil {
			return nil, err
		}
		regime = &r
	}

	var profiles []config.Profile
	if len(args) == 1 {
		file, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		profiles = file.Profiles
		if pf.profile != "" {
			p, err := file.FindProfile(pf.profile)
			if err != nil {
				return nil, err
			}
			profiles = []config.Profile{*p}
		}
	} else {
		if !pf.income.IsPositive() {
			return nil, fmt.Errorf("a profile file or --income is required")
		}
		p := config.Profile{
			Name:              "cli",
			Age:               pf.age,
			AnnualGrossIncome: pf.income,
			ParentsSenior:     pf.parentsSenior,
			Deductions:        pf.deductions,
		}
		if err := parser.ValidateProfile(&p); err != nil {
			return nil, err
		}
		profiles = []config.Profile{p}
	}

	if regime != nil {
		for i := range profiles {
			profiles[i].Regime = regime
		}
	}
	return profiles, nil
}

func (a *app) compareEngine() *compare.CompareEngine {
	engine := compare.NewCompareEngine(nil)
	engine.SetLogger(a.logger.Sugar())
	return engine
}

func newCalculateCmd(a *app) *cobra.Command {
	var pf profileFlags
	var saveTo string

	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Calculate income tax for one or more profiles",
		Long: `Calculate income tax from a YAML profile file or from flags.

Profiles without a regime are computed under both regimes with a recommendation.

Examples:
  itax calculate profiles.yaml --format html > report.html
  itax calculate --income 1200000 --age 35 --80c 150000 --80d 25000
  itax calculate --income 780000 --regime new --format summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profiles, err := pf.profiles(parser, args)
			if err != nil {
				return err
			}
			if saveTo != "" && len(profiles) != 1 {
				return fmt.Errorf("--save needs exactly one profile, got %d", len(profiles))
			}

			engine := a.compareEngine()
			gen := output.NewReportGenerator(cmd.OutOrStdout())
			for i := range profiles {
				p := &profiles[i]
				input, err := parser.ToTaxInput(p)
				if err != nil {
					return fmt.Errorf("profile %s: %w", p.Name, err)
				}

				var report *domain.TaxReport
				if p.Regime != nil {
					result, err := engine.TaxCalc.Calculate(input)
					if err != nil {
						return fmt.Errorf("profile %s: %w", p.Name, err)
					}
					report = output.NewSingleReport(p.Name, input, result)
				} else {
					rc, err := engine.Compare(cmd.Context(), p.Name, input)
					if err != nil {
						return fmt.Errorf("profile %s: %w", p.Name, err)
					}
					report = rc.ToTaxReport()
				}

				if err := gen.Generate(report, a.format()); err != nil {
					return err
				}
				a.logger.Debug("tax calculated",
					zap.String("op", "itax.calculate"),
					zap.String("profile", p.Name),
					zap.Int("results", len(report.Results)))

				if saveTo != "" {
					if err := output.SaveInput(input, saveTo); err != nil {
						return fmt.Errorf("failed to save input: %w", err)
					}
				}
			}
			return nil
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&saveTo, "save", "", "write the resolved tax input to this YAML file")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var pf profileFlags

	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare the old and new regimes side by side",
		Long: `Compare old and new regime tax for every profile and recommend the cheaper one.

Formats: console (table), console-lite (one line per profile), json, csv, and
any report format (html, yaml) rendered per profile.

Examples:
  itax compare profiles.yaml
  itax compare profiles.yaml --format csv
  itax compare --income 1500000 --80c 150000 --hra 180000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profiles, err := pf.profiles(parser, args)
			if err != nil {
				return err
			}

			named := make([]compare.NamedInput, 0, len(profiles))
			for i := range profiles {
				input, err := parser.ToTaxInput(&profiles[i])
				if err != nil {
					return fmt.Errorf("profile %s: %w", profiles[i].Name, err)
				}
				named = append(named, compare.NamedInput{Name: profiles[i].Name, Input: input})
			}

			set, err := a.compareEngine().CompareProfiles(cmd.Context(), named)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				set.ConfigPath = args[0]
			}

			out := cmd.OutOrStdout()
			switch a.format() {
			case "console":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatSet(set))
			case "console-lite":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(set))
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			default:
				gen := output.NewReportGenerator(out)
				for i := range set.Comparisons {
					if err := gen.Generate(set.Comparisons[i].ToTaxReport(), a.format()); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	pf.register(cmd.Flags())
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <profile-file>",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile file %s is valid (%d profiles)\n", args[0], len(file.Profiles))
			return nil
		},
	}
}

func newBreakEvenCmd(a *app) *cobra.Command {
	var (
		income, employerNPS decimal.Decimal
		from, to, step      decimal.Decimal
		age                 int
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the deductions at which the old regime matches the new",
		Long: `Find the total old regime deductions (beyond the standard deduction) at which
old regime tax equals new regime tax. Claiming more than that favours the old regime.

Examples:
  itax breakeven --income 1500000
  itax breakeven --from 800000 --to 3000000 --step 200000 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			solver := breakeven.NewDefaultSolver()
			category := domain.GetAgeCategory(age)
			out := cmd.OutOrStdout()
			jsonOut := a.format() == "json"

			if to.IsPositive() {
				incomes, err := breakeven.IncomeRange(from, to, step)
				if err != nil {
					return err
				}
				sweep, err := solver.Sweep(cmd.Context(), incomes, category, employerNPS)
				if err != nil {
					return err
				}
				if jsonOut {
					s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatSweep(sweep)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatSweep(sweep))
				return nil
			}

			result, err := solver.Solve(cmd.Context(), breakeven.Request{
				GrossIncome: income,
				AgeCategory: category,
				EmployerNPS: employerNPS,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("break-even solved",
				zap.String("op", "itax.breakeven"),
				zap.Int("iterations", result.Iterations),
				zap.Bool("success", result.Success))
			if jsonOut {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &income, "income", decimal.Zero, "annual gross income")
	decimalVar(fs, &employerNPS, "employer-nps", decimal.Zero, "employer NPS contribution, 80CCD(2)")
	decimalVar(fs, &from, "from", decimal.NewFromInt(500000), "sweep: first income")
	decimalVar(fs, &to, "to", decimal.Zero, "sweep: last income (enables the sweep)")
	decimalVar(fs, &step, "step", decimal.NewFromInt(100000), "sweep: income step")
	fs.IntVar(&age, "age", 30, "age of the taxpayer")
	return cmd
}
