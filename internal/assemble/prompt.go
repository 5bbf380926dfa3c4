package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clarynt/clarynt/internal/outcome"
)

// promptInput carries everything a document-kind prompt can reference.
type promptInput struct {
	Title   string
	Answers string
	Role    string
}

// kindPrompt is the system prompt plus the user-prompt builder for one
// document kind.
type kindPrompt struct {
	system string
	user   func(in promptInput) string
}

// RenderAnswers produces a deterministic rendering of the caller-supplied
// answers: sorted by key, empty values omitted. Two calls with equal maps
// yield byte-identical output, which keeps the request shape reproducible.
func RenderAnswers(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k, v := range answers {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "\n**%s**: %s\n", k, answers[k])
	}
	return b.String()
}

// BuildPrompt returns the system and user prompt for generating kind under
// classification o. The same inputs always produce the same prompts.
func BuildPrompt(kind DocumentKind, o outcome.Outcome, title string, answers map[string]string) (string, string, error) {
	kp, ok := kindPrompts[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown document kind: %s", kind)
	}
	in := promptInput{
		Title:   title,
		Answers: RenderAnswers(answers),
		Role:    roleFor(o),
	}
	return kp.system, kp.user(in), nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<<No specific details provided>>"
	}
	return s
}

var kindPrompts = map[DocumentKind]kindPrompt{
	KindGeneralStatement: {
		system: "You are a precision compliance documentation specialist. Generate complete, implementable documents.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1702(2)(a)):
A developer must provide a general statement describing:
- The reasonably foreseeable uses of the high-risk AI system
- Known harmful or inappropriate uses of the high-risk AI system

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "General Statement of Intended and Prohibited Uses" document that developers can provide to deployers.

DOCUMENT STRUCTURE:
1. Introduction - Brief overview of the system and purpose of this statement
2. Reasonably Foreseeable Uses - List and describe legitimate use cases
3. Known Harmful or Inappropriate Uses - Explicitly list uses that are known to be harmful or inappropriate
4. Use Case Boundaries - Clarify the boundaries between appropriate and inappropriate uses
5. Deployment Context Considerations - Factors deployers should consider

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual document itself - no meta-commentary
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: description]
- Do NOT reference outcome numbers or question IDs
- Write in professional, regulatory-compliant tone
- Be specific and actionable for deployers receiving this document
`, in.Title, orNone(in.Answers))
		},
	},

	KindTechnicalSummary: {
		system: "You are a technical compliance documentation specialist. Generate precise, actionable technical documents.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENTS:
§ 6-1-1702(2)(b) - Summary of training data type
§ 6-1-1702(2)(e) - Overview of data types deployers should use
§ 6-1-1702(2)(f) - Known limitations and risks of algorithmic discrimination

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "Technical Summary" document for deployers.

DOCUMENT STRUCTURE:
1. System Overview - High-level description of the AI system architecture
2. Training Data Summary - Types of data used, sources, time periods, collection methods
3. Input Data Requirements - Types and formats of data deployers should provide
4. Data Quality Expectations - Standards for input data quality
5. Known Limitations - Technical and operational limitations
6. Known Risks of Algorithmic Discrimination - Specific discrimination risks identified
7. Mitigation Measures Implemented - Built-in safeguards and fairness controls
8. Data Handling and Privacy - How data is processed and protected

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual document itself
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Use the organization's specific technical details from the user's answers
- For missing information, use: [PLACEHOLDER: specific technical detail needed]
- Do NOT reference outcome numbers or question IDs
- Use clear technical language appropriate for deployer technical teams
- Be specific about data types, formats, and requirements
`, in.Title, orNone(in.Answers))
		},
	},

	KindEvaluationArtifact: {
		system: "You are a technical compliance documentation specialist for AI evaluation. Generate complete, metric-driven documents.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENTS:
§ 6-1-1702(2)(c) - Description of how system was evaluated for performance and algorithmic discrimination mitigation, including limitations
§ 6-1-1702(2)(d) - Description of monitoring data deployers must provide

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "Performance Evaluation and Monitoring Requirements" document.

DOCUMENT STRUCTURE:
1. Evaluation Methodology - Testing approach and frameworks used
2. Test Data Description - Characteristics of evaluation datasets
3. Performance Metrics - Overall accuracy, precision, recall, and other performance measures
4. Fairness Evaluation - Testing for algorithmic discrimination across protected characteristics
5. Fairness Metrics Results - Demographic parity, equal opportunity, calibration metrics
6. Limitations of Evaluation - Known limitations and gaps in testing
7. Ongoing Monitoring Requirements - Data deployers must collect and provide back to developer
8. Recommended Performance Thresholds - Metrics deployers should monitor
9. Monitoring Frequency - How often deployers should evaluate performance

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual document itself
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Include specific metrics and methodologies from the user's answers
- For missing information, use: [PLACEHOLDER: specific metric or methodology]
- Do NOT reference outcome numbers or question IDs
- Use quantitative metrics where possible
- Be specific about what deployers must monitor and report back
`, in.Title, orNone(in.Answers))
		},
	},

	KindRiskManagement: {
		system: "You are a compliance policy specialist. Generate formal, implementable governance documents aligned with NIST AI RMF.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1703(2)):
A deployer must implement a risk management policy and program including:
- Documented policies, procedures, and practices to manage algorithmic discrimination risks
- Regular identification, documentation, and mitigation of risks
- Annual review and updates

The policy should align with NIST AI Risk Management Framework or ISO/IEC 42001.

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "Risk Management Policy and Program" document.

DOCUMENT STRUCTURE:
1. Policy Statement - Purpose and scope of risk management program
2. Governance Structure - Roles, responsibilities, and accountability (map to NIST AI RMF GOVERN function)
3. Risk Identification Process - How risks are identified and documented (MAP function)
4. Risk Assessment and Measurement - Methods for evaluating risk severity (MEASURE function)
5. Risk Mitigation and Management - Strategies for addressing identified risks (MANAGE function)
6. Testing and Validation - Ongoing testing protocols for algorithmic discrimination
7. Monitoring and Reporting - Continuous monitoring and escalation procedures
8. Incident Response - Procedures when discrimination is detected
9. Annual Review Process - Schedule and methodology for annual updates
10. Documentation and Record-Keeping - What records must be maintained

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual policy document itself
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Align with NIST AI RMF structure (Govern, Map, Measure, Manage)
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: specific procedure or detail]
- Do NOT reference outcome numbers or question IDs
- Write in formal policy language suitable for internal governance
`, in.Title, orNone(in.Answers))
		},
	},

	KindImpactAssessment: {
		system: "You are a regulatory impact assessment specialist. Generate thorough, analytical assessment documents.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1703(3)):
A deployer must complete an impact assessment before deployment containing:
- Purpose, intended use cases, benefits, and deployment context
- Analysis of discrimination risks
- Description of data categories and data management
- Description of risk management implementation
- Performance metrics for evaluating algorithmic discrimination

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "Impact Assessment" document that must be updated annually.

DOCUMENT STRUCTURE:
1. Executive Summary - High-level overview of the assessment
2. System Description and Purpose - Detailed description of the AI system and its purpose
3. Intended Use Cases and Benefits - Specific use cases and intended benefits
4. Deployment Context - Where and how the system will be deployed
5. Consequential Decision Analysis - Nature of decisions and potential impacts on consumers
6. Data Categories and Sources - Types of data processed, collected, and used
7. Data Management Practices - Collection, use, protection, and retention of data
8. Algorithmic Discrimination Risk Analysis - Identified risks across protected characteristics
9. Risk Mitigation Strategies - How identified risks are being addressed
10. Risk Management Program Implementation - Description of policies and procedures in place
11. Performance Metrics - Specific metrics for monitoring algorithmic discrimination
12. Testing and Validation Results - Summary of bias testing conducted
13. Human Oversight and Review - Role of human decision-makers
14. Consumer Rights Implementation - How consumer rights are being protected
15. Annual Review Schedule - Date of next required update

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual impact assessment document
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: specific detail or data]
- Do NOT reference outcome numbers or question IDs
- Write in formal, analytical tone suitable for regulatory review
- Include specific, measurable metrics where possible
`, in.Title, orNone(in.Answers))
		},
	},

	KindConsumerNotice: {
		system: "You are a consumer communications specialist. Generate clear, accessible consumer notices in plain language.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1703(5)):
When making or substantially influencing a consequential decision, deployers must provide consumers:
- Statement that a high-risk AI system was used in the decision-making
- Information about the purpose of the system
- Nature of the consequential decision
- Contact information for questions
- Rights to opt out (where applicable)
- Rights to appeal and seek human review

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a "Consumer Notice Template" that can be customized for different consequential decisions.

DOCUMENT STRUCTURE:
1. Notice Header - Clear title indicating this is an AI use notice
2. AI System Usage Statement - Clear statement that AI is being used
3. Purpose and Function - What the AI system does
4. Decision Type - Nature of the consequential decision being made
5. Your Rights - List of consumer rights (opt-out, appeal, human review)
6. How to Exercise Your Rights - Specific instructions for exercising rights
7. Contact Information - How to get more information or file appeals
8. Additional Information - Where to find more details

FORMAT INSTRUCTION:
Analyze the USER'S SYSTEM DETAILS to determine the primary interaction mode (e.g., website, mobile app, phone, in-person).
Generate ONLY the single most appropriate notice format for that specific mode.

CRITICAL INSTRUCTIONS:
- Generate actual notice templates, not instructions
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Use plain language - aim for 8th grade reading level
- Be concise but complete - consumers need to understand their rights
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: specific detail]
- Do NOT reference outcome numbers or question IDs
- Format for easy implementation (copy-paste ready)
`, in.Title, orNone(in.Answers))
		},
	},

	KindAdverseAction: {
		system: "You are a consumer rights specialist. Generate clear, empathetic adverse action notices that protect consumer rights.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1703(6)):
For adverse consequential decisions, deployers must provide:
- Explanation of principal reason(s) for the adverse decision
- Data or data source that was a significant factor
- Opportunity to correct incorrect personal data
- Opportunity to appeal with human review (where technically feasible)
- Information about how to submit an appeal

USER'S SYSTEM DETAILS:
%s

TASK:
Generate an "Adverse Action Notice Template" that explains AI-based denials or negative decisions.

DOCUMENT STRUCTURE:
1. Notice Header - Clear indication this is an adverse action notice
2. Decision Summary - What decision was made
3. Principal Reasons - Main factors that led to the decision
4. Significant Data Factors - Specific data that influenced the decision
5. Right to Correct Data - How to correct any incorrect personal information
6. Right to Appeal - Clear explanation of appeal rights
7. How to Appeal - Step-by-step process for filing an appeal
8. Human Review Process - What to expect from human review
9. Timeline - How long the appeal process takes
10. Contact Information - Who to contact for appeals

FORMAT INSTRUCTION:
Analyze the USER'S SYSTEM DETAILS to determine the specific type of adverse decision being made.
Generate ONLY the single adverse action notice relevant to that specific decision type (e.g., "loan denial", "employment rejection", "housing application", etc).

CRITICAL INSTRUCTIONS:
- Generate actual notice templates that can be customized
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Use plain language - must be clear to consumers
- Be specific about appeal processes and timelines
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: specific procedure]
- Do NOT reference outcome numbers or question IDs
- Balance legal requirements with empathetic tone
- Format for easy implementation
`, in.Title, orNone(in.Answers))
		},
	},

	KindPublicStatement: {
		system: "You are a public communications specialist for AI compliance. Generate clear, trustworthy public disclosures.",
		user: func(in promptInput) string {
			var roleContext string
			switch in.Role {
			case "developer":
				roleContext = `As a DEVELOPER, your public statement must describe (§ 6-1-1702(4)):
- Types of high-risk AI systems you develop
- How you manage risks of algorithmic discrimination in development`
			case "deployer":
				roleContext = `As a DEPLOYER, your public statement must describe (§ 6-1-1703(4)):
- Intended use of the high-risk AI systems you deploy
- How you manage known or reasonably foreseeable risks of algorithmic discrimination`
			default:
				roleContext = `As BOTH a developer and deployer, your public statement must describe:
- Types of high-risk AI systems you develop (developer requirement)
- How you manage discrimination risks in development (developer requirement)
- Intended uses of systems you deploy (deployer requirement)
- How you manage discrimination risks in deployment (deployer requirement)`
			}

			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

ROLE-SPECIFIC REQUIREMENTS:
%s

USER'S SYSTEM DETAILS:
%s

TASK:
Generate a complete "Public AI Systems Disclosure" webpage content suitable for publishing on the organization's website.

DOCUMENT STRUCTURE:
1. Introduction - Brief statement about commitment to responsible AI
2. AI Systems Overview - Description of high-risk AI systems (developed and/or deployed)
3. Use Cases and Applications - How the AI systems are used
4. Risk Management Approach - How algorithmic discrimination risks are managed
5. Governance and Oversight - Who is accountable for AI systems
6. Testing and Validation - How systems are tested for fairness
7. Consumer Rights - How consumers can exercise their rights
8. Contact Information - How to reach the organization with questions or concerns
9. Additional Resources - Links to more detailed information

CRITICAL INSTRUCTIONS:
- Generate ONLY the actual webpage content
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Write for a public audience - clear, accessible language
- Balance transparency with trade secret protection
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: specific detail]
- Do NOT reference outcome numbers or question IDs
- Maintain professional tone that builds public trust
`, in.Title, roleContext, orNone(in.Answers))
		},
	},

	KindInteractionNotice: {
		system: "You are a user experience writer specializing in AI disclosures. Generate brief, clear interaction notices.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1704):
Entities that deploy AI systems intended to interact with consumers must disclose that the consumer is interacting with an AI system (unless it would be obvious to a reasonable person).

USER'S SYSTEM DETAILS:
%s

TASK:
Generate "AI Interaction Disclosure Notices" for various contexts.

DOCUMENT STRUCTURE:
Analyze the USER'S SYSTEM DETAILS to determine the specific interaction channel (e.g., chatbot, phone, email).
Generate ONLY the single disclosure notice appropriate for that specific channel.

Each notice should:
- Clearly state that user is interacting with AI
- Be concise (1-2 sentences)
- Be immediately visible/audible
- Use plain language

FORMATTING:
Ensure the notice format matches the identified channel (e.g., short text for chatbot, script for phone, etc).

CRITICAL INSTRUCTIONS:
- Generate actual disclosure text, not instructions
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Keep it very brief - consumers need immediate clarity
- Multiple format options for different channels
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: system name]
- Do NOT reference outcome numbers or question IDs
- Each disclosure should be copy-paste ready
`, in.Title, orNone(in.Answers))
		},
	},

	KindSyntheticContent: {
		system: "You are a media transparency specialist. Generate clear, prominent synthetic content disclosures.",
		user: func(in promptInput) string {
			return fmt.Sprintf(`You are a compliance documentation specialist for the Colorado AI Act.

CLASSIFICATION: %s

STATUTORY REQUIREMENT (§ 6-1-1704):
For AI-generated synthetic content (including deepfakes), entities must disclose that the content is AI-generated.

USER'S SYSTEM DETAILS:
%s

TASK:
Generate "Synthetic Content Disclosure Notices" for various media types.

DOCUMENT STRUCTURE:
Analyze the USER'S SYSTEM DETAILS to determine the specific type of synthetic content (e.g., image, video, audio, text).
Generate ONLY the single disclosure set appropriate for that specific content type.

Each disclosure should:
- Clearly state content is AI-generated
- Be prominent and conspicuous
- Use clear, plain language
- Avoid minimizing the AI nature

CRITICAL INSTRUCTIONS:
- Generate actual disclosure text and placement guidance
- Output MUST be in proper markdown format with appropriate headers, lists, and formatting
- Provide both short and detailed versions for the identified type
- Include visual placement recommendations (e.g., "Top-left watermark", "Opening 5 seconds")
- Use the organization's specific details from the user's answers
- For missing information, use: [PLACEHOLDER: content type]
- Do NOT reference outcome numbers or question IDs
- Each disclosure should be implementation-ready
`, in.Title, orNone(in.Answers))
		},
	},
}
