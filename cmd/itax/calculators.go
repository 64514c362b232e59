package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

type row struct {
	label string
	value string
}

func printRows(w io.Writer, title string, rows []row) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, r := range rows {
		if r.label == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%-34s %s\n", r.label+":", r.value)
	}
}

// render writes result as JSON, or as a titled table of rows built with the configured currency
func (a *app) render(cmd *cobra.Command, title string, result interface{}, rows func(cur output.Currency) []row) error {
	out := cmd.OutOrStdout()
	if a.format() == "json" {
		return writeJSON(out, result)
	}
	cur, err := a.currency()
	if err != nil {
		return err
	}
	printRows(out, title, rows(cur))
	return nil
}

func pct(d decimal.Decimal) string { return output.FormatPercentage(d) }

// salaryFlags are the CTC inputs shared by the salary and offers commands
type salaryFlags struct {
	in  calculation.SalaryInput
	age int
}

func (sf *salaryFlags) register(fs *pflag.FlagSet) {
	decimalVar(fs, &sf.in.BasicPercent, "basic-percent", decimal.NewFromInt(50), "basic as a percent of CTC")
	fs.BoolVar(&sf.in.IsMetro, "metro", false, "lives in a metro city (50% HRA exemption cap)")
	decimalVar(fs, &sf.in.MonthlyRent, "rent", decimal.Zero, "monthly rent paid")
	decimalVar(fs, &sf.in.Additional80C, "80c", decimal.Zero, "80C investments on top of employee PF")
	decimalVar(fs, &sf.in.Section80D, "80d", decimal.Zero, "Section 80D health insurance")
	decimalVar(fs, &sf.in.EmployerNPSPercent, "employer-nps-percent", decimal.Zero, "employer NPS as a percent of basic")
	fs.IntVar(&sf.age, "age", 30, "age of the employee")
}

func (sf *salaryFlags) input(ctc decimal.Decimal) calculation.SalaryInput {
	in := sf.in
	in.CTC = ctc
	in.AgeCategory = domain.GetAgeCategory(sf.age)
	return in
}

func (a *app) salaryCalculator() *calculation.SalaryCalculator {
	sc := calculation.NewSalaryCalculator()
	sc.SetLogger(a.logger.Sugar())
	return sc
}

func newSalaryCmd(a *app) *cobra.Command {
	var sf salaryFlags
	var ctc decimal.Decimal

	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Break a CTC down into components and monthly in-hand pay",
		Example: `  itax salary --ctc 1200000 --metro --rent 25000 --80c 50000
  itax salary --ctc 2400000 --employer-nps-percent 10 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := a.salaryCalculator().Calculate(sf.input(ctc))
			if err != nil {
				return err
			}
			return a.render(cmd, "SALARY BREAKDOWN "+domain.TaxYear, sb, func(cur output.Currency) []row {
				c := sb.Components
				rows := []row{
					{"CTC", cur.Format(sb.CTC)},
					{"Basic", cur.Format(c.Basic)},
					{"HRA", cur.Format(c.HRA)},
					{"Special Allowance", cur.Format(c.SpecialAllowance)},
					{"Employer PF", cur.Format(c.EmployerPF)},
					{"Employer NPS", cur.Format(c.EmployerNPS)},
					{"Gratuity Provision", cur.Format(c.Gratuity)},
					{"Gross Salary", cur.Format(c.GrossSalary)},
					{"Employee PF", cur.Format(c.EmployeePF)},
					{"Professional Tax", cur.Format(c.ProfessionalTax)},
				}
				if sb.HRAExemption != nil {
					rows = append(rows, row{"HRA Exemption", cur.Format(sb.HRAExemption.ExemptAmount)})
				}
				rows = append(rows,
					row{},
					row{"Old Regime Tax", cur.Format(sb.OldRegime.Tax.FinalTaxPayable)},
					row{"Old Regime In-hand (monthly)", cur.Format(sb.OldRegime.MonthlyInHand)},
					row{"New Regime Tax", cur.Format(sb.NewRegime.Tax.FinalTaxPayable)},
					row{"New Regime In-hand (monthly)", cur.Format(sb.NewRegime.MonthlyInHand)},
					row{"Better Regime", fmt.Sprintf("%s (saves %s)", sb.BetterRegime, cur.Format(sb.TaxSavings))},
				)
				return rows
			})
		},
	}

	decimalVar(cmd.Flags(), &ctc, "ctc", decimal.Zero, "annual cost to company")
	sf.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("ctc")
	return cmd
}

func newOffersCmd(a *app) *cobra.Command {
	var sf salaryFlags
	var current, offer decimal.Decimal

	cmd := &cobra.Command{
		Use:     "offers",
		Short:   "Compare a job offer with the current package by in-hand pay",
		Example: `  itax offers --current 1200000 --offer 1500000 --metro --rent 25000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := a.salaryCalculator().CompareOffers(sf.input(current), sf.input(offer))
			if err != nil {
				return err
			}
			return a.render(cmd, "OFFER COMPARISON "+domain.TaxYear, cmp, func(cur output.Currency) []row {
				curBest, offBest := cmp.Current.Best(), cmp.Offer.Best()
				return []row{
					{"Current CTC", cur.Format(cmp.Current.CTC)},
					{"Offered CTC", cur.Format(cmp.Offer.CTC)},
					{"CTC Hike", pct(cmp.CTCHikePercent)},
					{},
					{"Current In-hand (monthly)", fmt.Sprintf("%s (%s regime)", cur.Format(curBest.MonthlyInHand), cmp.Current.BetterRegime)},
					{"Offered In-hand (monthly)", fmt.Sprintf("%s (%s regime)", cur.Format(offBest.MonthlyInHand), cmp.Offer.BetterRegime)},
					{"In-hand Difference (monthly)", cur.Format(cmp.MonthlyDifference)},
					{"In-hand Difference (annual)", cur.Format(cmp.InHandDifference)},
					{"In-hand Hike", pct(cmp.InHandHikePercent)},
				}
			})
		},
	}

	decimalVar(cmd.Flags(), &current, "current", decimal.Zero, "current annual CTC")
	decimalVar(cmd.Flags(), &offer, "offer", decimal.Zero, "offered annual CTC")
	sf.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("offer")
	return cmd
}

func newHRACmd(a *app) *cobra.Command {
	var in calculation.HRAInput

	cmd := &cobra.Command{
		Use:     "hra",
		Short:   "Compute the exempt portion of HRA",
		Example: `  itax hra --basic 600000 --hra 300000 --rent 240000 --metro`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateHRAExemption(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "HRA EXEMPTION", res, func(cur output.Currency) []row {
				return []row{
					{"Actual HRA Received", cur.Format(res.ActualHRA)},
					{"Rent minus 10% of Basic", cur.Format(res.RentOverTenPct)},
					{"Share of Basic", cur.Format(res.PercentOfBasic)},
					{"Exempt HRA", cur.Format(res.ExemptAmount)},
					{"Taxable HRA", cur.Format(res.TaxableHRA)},
				}
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.BasicSalary, "basic", decimal.Zero, "annual basic + DA")
	decimalVar(fs, &in.HRAReceived, "hra", decimal.Zero, "annual HRA received")
	decimalVar(fs, &in.RentPaid, "rent", decimal.Zero, "annual rent paid")
	fs.BoolVar(&in.IsMetro, "metro", false, "lives in a metro city")
	return cmd
}

func newSIPCmd(a *app) *cobra.Command {
	var in calculation.SIPInput

	cmd := &cobra.Command{
		Use:     "sip",
		Short:   "Project the value of a monthly SIP",
		Example: `  itax sip --monthly 10000 --rate 12 --years 15 --step-up 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateSIP(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "SIP PROJECTION", res, func(cur output.Currency) []row {
				rows := []row{
					{"Total Invested", cur.Format(res.TotalInvested)},
					{"Estimated Returns", cur.Format(res.EstimatedReturns)},
					{"Future Value", cur.Format(res.FutureValue)},
					{},
				}
				for _, y := range res.Yearly {
					rows = append(rows, row{"Year " + strconv.Itoa(y.Year), cur.Format(y.ClosingValue)})
				}
				return rows
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.MonthlyInvestment, "monthly", decimal.Zero, "monthly installment")
	decimalVar(fs, &in.AnnualReturnRate, "rate", decimal.NewFromInt(12), "expected annual return, percent")
	fs.IntVar(&in.Years, "years", 10, "investment period in years")
	decimalVar(fs, &in.AnnualStepUp, "step-up", decimal.Zero, "yearly increase in the installment, percent")
	return cmd
}

func newFDCmd(a *app) *cobra.Command {
	var in calculation.FDInput
	var compounding string

	cmd := &cobra.Command{
		Use:     "fd",
		Short:   "Compute fixed deposit maturity",
		Example: `  itax fd --principal 100000 --rate 7 --months 12 --compounding quarterly`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := calculation.ParseCompounding(compounding)
			if err != nil {
				return err
			}
			in.Compounding = c
			res, err := calculation.CalculateFD(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "FIXED DEPOSIT", res, func(cur output.Currency) []row {
				return []row{
					{"Principal", cur.Format(res.Principal)},
					{"Interest Earned", cur.Format(res.InterestEarned)},
					{"Maturity Amount", cur.Format(res.MaturityAmount)},
					{"Effective Annual Yield", pct(res.EffectiveYield)},
				}
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.Principal, "principal", decimal.Zero, "amount deposited")
	decimalVar(fs, &in.AnnualRate, "rate", decimal.NewFromInt(7), "annual interest rate, percent")
	fs.IntVar(&in.TenureMonths, "months", 12, "tenure in months")
	fs.StringVar(&compounding, "compounding", "quarterly", "monthly, quarterly, half-yearly or yearly")
	return cmd
}

func newEPFCmd(a *app) *cobra.Command {
	var in calculation.EPFInput

	cmd := &cobra.Command{
		Use:     "epf",
		Short:   "Project the EPF balance",
		Example: `  itax epf --basic 30000 --balance 200000 --increase 6 --years 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateEPF(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "EPF PROJECTION", res, func(cur output.Currency) []row {
				return []row{
					{"Interest Rate", pct(res.InterestRate)},
					{"Employee Contribution", cur.Format(res.TotalEmployee)},
					{"Employer Contribution", cur.Format(res.TotalEmployer)},
					{"Total Interest", cur.Format(res.TotalInterest)},
					{"Maturity Amount", cur.Format(res.MaturityAmount)},
					{"Paid into EPS (not in balance)", cur.Format(res.TotalEPS)},
				}
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.MonthlyBasic, "basic", decimal.Zero, "monthly basic + DA")
	decimalVar(fs, &in.CurrentBalance, "balance", decimal.Zero, "current EPF balance")
	decimalVar(fs, &in.AnnualSalaryIncrease, "increase", decimal.NewFromInt(5), "yearly salary increase, percent")
	decimalVar(fs, &in.InterestRate, "rate", decimal.Zero, "interest rate, percent (default the notified rate)")
	fs.IntVar(&in.Years, "years", 20, "years to project")
	return cmd
}

func newEPSCmd(a *app) *cobra.Command {
	var in calculation.EPSInput

	cmd := &cobra.Command{
		Use:     "eps",
		Short:   "Estimate the EPS monthly pension",
		Example: `  itax eps --salary 15000 --years 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateEPS(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "EPS PENSION", res, func(cur output.Currency) []row {
				if !res.Eligible {
					return []row{{"Eligible", "no"}, {"Reason", res.Reason}}
				}
				return []row{
					{"Pensionable Salary", cur.Format(res.PensionableSalary)},
					{"Pensionable Service (years)", strconv.Itoa(res.PensionableYears)},
					{"Age Adjustment", pct(res.AgeAdjustment)},
					{"Monthly Pension", cur.Format(res.MonthlyPension)},
					{"Annual Pension", cur.Format(res.AnnualPension)},
				}
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.PensionableSalary, "salary", decimal.Zero, "average monthly basic of the last 60 months")
	fs.IntVar(&in.ServiceYears, "years", 0, "years of service")
	fs.IntVar(&in.PensionAge, "pension-age", 58, "age at which the pension starts")
	return cmd
}

func newNPSCmd(a *app) *cobra.Command {
	var in calculation.NPSInput

	cmd := &cobra.Command{
		Use:     "nps",
		Short:   "Project the NPS corpus and pension at 60",
		Example: `  itax nps --age 30 --monthly 5000 --return 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateNPS(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "NPS PROJECTION", res, func(cur output.Currency) []row {
				return []row{
					{"Years to Retirement", strconv.Itoa(res.YearsToRetirement)},
					{"Total Contribution", cur.Format(res.TotalContribution)},
					{"Corpus at 60", cur.Format(res.Corpus)},
					{"Annuity Purchase", cur.Format(res.AnnuityCorpus)},
					{"Lump Sum", cur.Format(res.LumpSum)},
					{"Monthly Pension", cur.Format(res.MonthlyPension)},
				}
			})
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&in.CurrentAge, "age", 30, "current age")
	decimalVar(fs, &in.MonthlyContribution, "monthly", decimal.Zero, "monthly contribution")
	decimalVar(fs, &in.CurrentCorpus, "corpus", decimal.Zero, "current NPS corpus")
	decimalVar(fs, &in.ExpectedReturn, "return", decimal.NewFromInt(10), "expected annual return, percent")
	decimalVar(fs, &in.AnnuityPercent, "annuity-percent", decimal.NewFromInt(40), "share of corpus used for the annuity, at least 40")
	decimalVar(fs, &in.AnnuityRate, "annuity-rate", decimal.NewFromInt(6), "annuity rate, percent")
	return cmd
}

func newGratuityCmd(a *app) *cobra.Command {
	var in calculation.GratuityInput

	cmd := &cobra.Command{
		Use:     "gratuity",
		Short:   "Compute gratuity and its exempt portion",
		Example: `  itax gratuity --salary 50000 --years 10 --months 7`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateGratuity(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "GRATUITY", res, func(cur output.Currency) []row {
				if !res.Eligible {
					return []row{{"Eligible", "no (needs 5 years of service)"}}
				}
				return []row{
					{"Years Counted", strconv.Itoa(res.CountedYears)},
					{"Gratuity", cur.Format(res.Gratuity)},
					{"Exempt", cur.Format(res.ExemptAmount)},
					{"Taxable", cur.Format(res.TaxableAmount)},
				}
			})
		},
	}

	fs := cmd.Flags()
	decimalVar(fs, &in.LastDrawnSalary, "salary", decimal.Zero, "last drawn monthly basic + DA")
	fs.IntVar(&in.ServiceYears, "years", 0, "completed years of service")
	fs.IntVar(&in.ServiceMonths, "months", 0, "months beyond the completed years (0-11)")
	fs.BoolVar(&in.CoveredByAct, "covered", true, "employer is covered by the Payment of Gratuity Act")
	return cmd
}

func newRetirementCmd(a *app) *cobra.Command {
	var in calculation.RetirementInput

	cmd := &cobra.Command{
		Use:     "retirement",
		Short:   "Size the retirement corpus and the SIP needed to reach it",
		Example: `  itax retirement --age 30 --expenses 50000 --savings 500000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculation.CalculateRetirementCorpus(in)
			if err != nil {
				return err
			}
			return a.render(cmd, "RETIREMENT CORPUS", res, func(cur output.Currency) []row {
				return []row{
					{"Years to Retirement", strconv.Itoa(res.YearsToRetirement)},
					{"Years in Retirement", strconv.Itoa(res.YearsInRetirement)},
					{"Monthly Expenses at Retirement", cur.Format(res.MonthlyExpensesAtStart)},
					{"Real Return", pct(res.RealReturn)},
					{"Corpus Required", cur.Format(res.CorpusRequired)},
					{"Savings at Retirement", cur.Format(res.SavingsAtRetirement)},
					{"Shortfall", cur.Format(res.Shortfall)},
					{"Required Monthly SIP", cur.Format(res.RequiredMonthlySIP)},
				}
			})
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&in.CurrentAge, "age", 30, "current age")
	fs.IntVar(&in.RetirementAge, "retire-at", 60, "retirement age")
	fs.IntVar(&in.LifeExpectancy, "life-expectancy", 85, "life expectancy")
	decimalVar(fs, &in.MonthlyExpenses, "expenses", decimal.Zero, "monthly expenses in today's rupees")
	decimalVar(fs, &in.CurrentSavings, "savings", decimal.Zero, "retirement savings today")
	decimalVar(fs, &in.InflationRate, "inflation", decimal.NewFromInt(6), "inflation, percent")
	decimalVar(fs, &in.PreRetirementReturn, "pre-return", decimal.NewFromInt(12), "return before retirement, percent")
	decimalVar(fs, &in.PostRetirementReturn, "post-return", decimal.NewFromInt(7), "return after retirement, percent")
	return cmd
}
