package entities

// AlignmentStage is the terminal stage that produced a result. Never "unknown".
type AlignmentStage string

const (
	StageNone                      AlignmentStage = ""
	Stage0NoCandidates              AlignmentStage = "stage0_no_candidates"
	Stage1CookedExact               AlignmentStage = "stage1_cooked_exact"
	Stage1bRawFoundationDirect      AlignmentStage = "stage1b_raw_foundation_direct"
	Stage2RawConvert                AlignmentStage = "stage2_raw_convert"
	Stage3BrandedCooked             AlignmentStage = "stage3_branded_cooked"
	Stage4BrandedEnergy             AlignmentStage = "stage4_branded_energy"
	Stage5ProxyAlignment            AlignmentStage = "stage5_proxy_alignment"
	StageZEnergyOnly                AlignmentStage = "stageZ_energy_only"
)

// ValidStages is VALID_STAGES from spec.md §3.
var ValidStages = map[AlignmentStage]bool{
	Stage0NoCandidates:         true,
	Stage1CookedExact:         true,
	Stage1bRawFoundationDirect: true,
	Stage2RawConvert:          true,
	Stage3BrandedCooked:       true,
	Stage4BrandedEnergy:       true,
	Stage5ProxyAlignment:      true,
	StageZEnergyOnly:          true,
}

// MethodReason explains how the method resolver arrived at its answer.
type MethodReason string

const (
	ReasonExplicit         MethodReason = "explicit"
	ReasonAlias            MethodReason = "alias"
	ReasonConversionConfig MethodReason = "conversion_config"
	ReasonClassDefault     MethodReason = "class_default"
	ReasonCategoryDefault  MethodReason = "category_default"
	ReasonFirstAvailable   MethodReason = "first_available"
)

// MethodResolution is the method resolver's single, pre-dispatch decision.
type MethodResolution struct {
	Method         string
	Reason         MethodReason
	ConfidencePenalty float64
}

// Inferred reports whether the method was guessed rather than stated explicitly.
func (m MethodResolution) Inferred() bool {
	return m.Reason != ReasonExplicit
}

// Telemetry is the mandatory, machine-checkable record of why a catalog
// entry was chosen. Every AlignmentResult carries exactly one of these.
type Telemetry struct {
	AlignmentStage AlignmentStage `json:"alignment_stage"`

	Method          string       `json:"method"`
	MethodReason    MethodReason `json:"method_reason"`
	MethodInferred  bool         `json:"method_inferred"`

	ConversionApplied bool     `json:"conversion_applied"`
	ConversionSteps   []string `json:"conversion_steps"`
	EnergyClamped     bool     `json:"energy_clamped"`
	AtwaterOK         bool     `json:"atwater_ok"`

	CandidatePoolTotal         int `json:"candidate_pool_total"`
	CandidatePoolRawFoundation int `json:"candidate_pool_raw_foundation"`
	CandidatePoolCookedSRLegacy int `json:"candidate_pool_cooked_sr_legacy"`
	CandidatePoolBranded       int `json:"candidate_pool_branded"`

	SearchNormalizedQuery string `json:"search_normalized_query"`
	SearchVariantsTried   int    `json:"search_variants_tried"`

	Stage1bScore              *float64 `json:"stage1b_score,omitempty"`
	ProxyUsed                 bool     `json:"proxy_used,omitempty"`
	ProxyFormula              string   `json:"proxy_formula,omitempty"`
	StageZCategory             string   `json:"stagez_category,omitempty"`
	StageZKcalClamped          bool     `json:"stagez_kcal_clamped,omitempty"`
	StageZPlausibilityAdjusted bool     `json:"stagez_plausibility_adjusted,omitempty"`

	SodiumGateBlocks               int  `json:"sodium_gate_blocks"`
	SodiumGatePasses               int  `json:"sodium_gate_passes"`
	NegativeVocabBlocks            int  `json:"negative_vocab_blocks"`
	Stage1BlockedRawFoundationExists bool `json:"stage1_blocked_raw_foundation_exists"`
	MassClampsApplied               int  `json:"mass_clamps_applied"`

	SparseAccept bool `json:"sparse_accept,omitempty"`
}

// Valid checks the two universal §4.7 invariants on the telemetry alone
// (alignment_stage is in VALID_STAGES; method is neither empty nor
// "unknown"); resultbuilder runs the rest of the assertion block.
// It returns a non-nil error describing the first invariant it finds broken.
func (t Telemetry) Valid() error {
	if !ValidStages[t.AlignmentStage] {
		return errInvariant("alignment_stage %q is not a member of VALID_STAGES", t.AlignmentStage)
	}
	if t.Method == "" || t.Method == "unknown" {
		return errInvariant("method must never be empty or %q", "unknown")
	}
	return nil
}
