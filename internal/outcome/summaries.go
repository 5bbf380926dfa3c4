package outcome

// Canned requirement summaries for outcomes that have no dedicated
// requirements document: these classifications carry no CAIA obligations, so
// the summary explains why rather than listing duties.
var notRegulatedSummaries = map[Outcome]string{
	NotSubject: `# Not Subject to the Colorado AI Act

## Overview

Your organization is not subject to the Colorado Artificial Intelligence Act (CAIA) because you do not conduct business in Colorado.

## What This Means

The Colorado AI Act applies only to persons or entities that "do business in Colorado." Since your operations do not meet this threshold, you are not required to comply with CAIA's requirements for developers or deployers of AI systems.

## No Compliance Obligations

You have no documentation, disclosure, risk management, or impact assessment obligations under CAIA at this time.

## If Your Situation Changes

If you begin doing business in Colorado in the future, you should reassess your obligations under CAIA based on:
- Whether you develop or deploy AI systems
- Whether those systems are high-risk
- Whether they are used to make consequential decisions

## Related Considerations

While CAIA does not apply, you may still be subject to:
- Federal AI and consumer protection regulations
- Other state laws where you do business
- Industry-specific AI governance requirements
`,

	NotAISystem: `# Not an AI System Under CAIA

## Overview

The technology or system you described does not qualify as an "artificial intelligence system" under the Colorado AI Act's definition.

## CAIA's Definition of AI System

Under § 6-1-1701(2), an "artificial intelligence system" means any machine-based system that, for any explicit or implicit objective, infers from the inputs the system receives how to generate outputs, including content, decisions, predictions, or recommendations, that can influence physical or virtual environments.

## Why Your System Is Not Covered

Your system does not meet this definition because it likely:
- Does not use machine learning or inference
- Follows deterministic, rule-based logic
- Does not generate outputs through learned patterns
- Is a traditional software application

## No Compliance Obligations

Since your system is not an AI system under CAIA, you have no obligations under the Act.

## Examples of Non-AI Systems

Systems that are typically not considered AI include:
- Traditional databases and queries
- Rule-based decision trees with no learning component
- Calculators and spreadsheets
- Static algorithms without adaptive components

## If Your Technology Changes

If you modify your system to incorporate machine learning, neural networks, or other AI capabilities, you should reassess whether CAIA applies.
`,

	NotDeveloper: `# Not a Developer Under CAIA

## Overview

Your organization is not considered a "developer" under the Colorado Artificial Intelligence Act.

## CAIA's Definition of Developer

Under § 6-1-1701(4), a "developer" means a person doing business in Colorado that develops or intentionally and substantially modifies an artificial intelligence system.

## Why You Are Not a Developer

You are not a developer because you:
- Do not create AI systems from scratch
- Do not substantially modify existing AI systems
- Only deploy or use AI systems created by others
- Make only minor configurations or customizations

## Potential Deployer Obligations

While you are not a developer, you may still have obligations as a **deployer** if you use high-risk AI systems to make consequential decisions in Colorado.

A "deployer" is a person doing business in Colorado that deploys a high-risk artificial intelligence system.

## Next Steps

If you deploy AI systems (created by others) for consequential decisions, assess whether:
- The AI systems are high-risk
- You qualify as a deployer
- You are exempt from deployer obligations

## No Developer Documentation Required

You do not need to create developer documentation, conduct pre-deployment testing, or notify deployers of risks, as these are developer-specific obligations.
`,
}
