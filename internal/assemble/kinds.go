// Package assemble decides which compliance documents a classification
// outcome requires, builds the generation prompt for each, and dispatches
// the generations concurrently.
package assemble

import "github.com/clarynt/clarynt/internal/outcome"

// DocumentKind identifies one category of compliance document.
type DocumentKind string

const (
	KindGeneralStatement   DocumentKind = "general_statement"
	KindTechnicalSummary   DocumentKind = "technical_summary"
	KindEvaluationArtifact DocumentKind = "evaluation_artifact"
	KindRiskManagement     DocumentKind = "risk_management_policy"
	KindImpactAssessment   DocumentKind = "impact_assessment"
	KindConsumerNotice     DocumentKind = "consumer_notice"
	KindAdverseAction      DocumentKind = "adverse_action_notice"
	KindPublicStatement    DocumentKind = "public_website_statement"
	KindInteractionNotice  DocumentKind = "interaction_notice"
	KindSyntheticContent   DocumentKind = "synthetic_content_disclosure"
)

// requiredKinds is the static outcome → document-kinds table. Adding an
// outcome or changing its document set is a data change here, not new
// control flow. Outcomes absent from the table require no documents.
var requiredKinds = map[outcome.Outcome][]DocumentKind{
	outcome.ExemptDeployer: {
		KindConsumerNotice,
		KindAdverseAction,
		KindPublicStatement,
	},
	outcome.GeneralAIDisclosure: {
		KindInteractionNotice,
		KindSyntheticContent,
	},
	outcome.DeveloperHighRisk: {
		KindGeneralStatement,
		KindTechnicalSummary,
		KindEvaluationArtifact,
		KindPublicStatement,
	},
	outcome.DeployerHighRisk: {
		KindRiskManagement,
		KindImpactAssessment,
		KindConsumerNotice,
		KindAdverseAction,
		KindPublicStatement,
	},
	outcome.BothHighRisk: {
		KindGeneralStatement,
		KindTechnicalSummary,
		KindEvaluationArtifact,
		KindRiskManagement,
		KindImpactAssessment,
		KindConsumerNotice,
		KindAdverseAction,
		KindPublicStatement,
	},
}

// RequiredKinds returns the document kinds required for o, in table order.
// Not-regulated and unknown outcomes require none.
func RequiredKinds(o outcome.Outcome) []DocumentKind {
	kinds := requiredKinds[o]
	out := make([]DocumentKind, len(kinds))
	copy(out, kinds)
	return out
}

// roleFor maps an outcome to the compliance role used by role-aware prompts.
func roleFor(o outcome.Outcome) string {
	switch o {
	case outcome.DeveloperHighRisk:
		return "developer"
	case outcome.DeployerHighRisk, outcome.ExemptDeployer:
		return "deployer"
	case outcome.BothHighRisk:
		return "both"
	default:
		return ""
	}
}
