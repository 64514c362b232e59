package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Rules: FY 2024-25 (AY 2025-26) slabs, rebate, surcharge and cess",
	"Income is treated as salary; standard deduction ₹50,000 (old) / ₹75,000 (new)",
	"Section 80C capped at ₹1,50,000; 80D and HRA are taken as already-eligible amounts",
	"Surcharge marginal relief at the ₹50L/₹1Cr/₹2Cr/₹5Cr boundaries is not modeled",
	"Each slab's tax, the surcharge and the cess are rounded to whole rupees",
}
