package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelemetryValid(t *testing.T) {
	tests := []struct {
		name    string
		t       Telemetry
		wantErr string
	}{
		{
			name: "valid stage and method",
			t:    Telemetry{AlignmentStage: Stage2RawConvert, Method: "grilled"},
		},
		{
			name:    "empty alignment stage is invalid",
			t:       Telemetry{AlignmentStage: StageNone, Method: "grilled"},
			wantErr: "not a member of VALID_STAGES",
		},
		{
			name:    "unrecognized alignment stage is invalid",
			t:       Telemetry{AlignmentStage: "not_a_real_stage", Method: "grilled"},
			wantErr: "not a member of VALID_STAGES",
		},
		{
			name:    "empty method is invalid",
			t:       Telemetry{AlignmentStage: Stage1CookedExact, Method: ""},
			wantErr: "method must never be empty",
		},
		{
			name:    "method unknown is invalid",
			t:       Telemetry{AlignmentStage: Stage1CookedExact, Method: "unknown"},
			wantErr: "method must never be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.t.Valid()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidStagesCoversEveryNonEmptyStageConstant(t *testing.T) {
	for _, s := range []AlignmentStage{
		Stage0NoCandidates, Stage1CookedExact, Stage1bRawFoundationDirect,
		Stage2RawConvert, Stage3BrandedCooked, Stage4BrandedEnergy,
		Stage5ProxyAlignment, StageZEnergyOnly,
	} {
		assert.Truef(t, ValidStages[s], "stage %q must be in VALID_STAGES", s)
	}
	assert.False(t, ValidStages[StageNone])
}

func TestMethodResolutionInferred(t *testing.T) {
	assert.False(t, MethodResolution{Reason: ReasonExplicit}.Inferred())
	for _, r := range []MethodReason{ReasonAlias, ReasonConversionConfig, ReasonClassDefault, ReasonCategoryDefault, ReasonFirstAvailable} {
		assert.True(t, MethodResolution{Reason: r}.Inferred(), "reason %q should be inferred", r)
	}
}
