package openai

import (
	"fmt"
	"strings"

	"github.com/veyra/skillmap/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string"
          },
          "kind": {
            "type": "string",
            "enum": ["explicit", "implicit"]
          },
          "confidence": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          },
          "evidence": {
            "type": "array",
            "items": {"type": "string"}
          },
          "cluster": {
            "type": "string"
          },
          "narrative": {
            "type": "string"
          },
          "state": {
            "type": "string",
            "enum": ["locked", "unlocked"]
          }
        },
        "required": ["name", "kind", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["skills"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract the professional skills evidenced by the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "kind" is "explicit" when the skill is stated outright, "implicit" when you infer it from what the person did.
- "confidence" is a number from 0 (pure guess) to 1 (certain). Rate explicit mentions with concrete evidence highest.
- "evidence" holds short verbatim snippets from the text supporting the claim, at most %d per skill.
- "cluster" should be one of: %s. Use "Other" when nothing fits.
- "narrative" is one sentence explaining how the evidence shows the skill. Optional.
- Include only skills the text actually supports. Do not hallucinate.
- If no skills can be identified, return "skills": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.



Example (resume fragment):
Input: "Led migration of our billing service from Python to Go, cutting p99 latency by 40%%."
Output:
{
  "skills": [
    {"name":"Go","kind":"explicit","confidence":0.9,"evidence":["migration of our billing service from Python to Go"],"cluster":"Programming Languages","narrative":"Drove a production service migration to Go."},
    {"name":"Python","kind":"explicit","confidence":0.8,"evidence":["from Python to Go"],"cluster":"Programming Languages"},
    {"name":"Performance Optimization","kind":"implicit","confidence":0.6,"evidence":["cutting p99 latency by 40%%"],"cluster":"Other","narrative":"Latency work implies profiling and tuning experience."}
  ]
}

---  // informal / activity-digest examples

Example (pasted note, no punctuation):
Input: "i maintain a react dashboard at work and do the postgres schema too"
Output:
{
  "skills": [
    {"name":"React","kind":"explicit","confidence":0.85,"evidence":["i maintain a react dashboard at work"],"cluster":"Frameworks & Libraries"},
    {"name":"PostgreSQL","kind":"explicit","confidence":0.8,"evidence":["do the postgres schema too"],"cluster":"Databases"}
  ]
}

Example (code-hosting activity digest):
Input: "repo: infra-tools (language: Terraform, topics: aws, ci) - scripts for provisioning staging"
Output:
{
  "skills": [
    {"name":"Terraform","kind":"explicit","confidence":0.8,"evidence":["repo: infra-tools (language: Terraform"],"cluster":"Cloud & Infrastructure"},
    {"name":"AWS","kind":"implicit","confidence":0.55,"evidence":["topics: aws"],"cluster":"Cloud & Infrastructure","narrative":"Provisioning tooling tagged aws suggests working cloud knowledge."}
  ]
}`

const gapResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "match_score": {
      "type": "integer",
      "minimum": 0,
      "maximum": 100
    },
    "matching_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "missing_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "cluster": {"type": "string"},
          "priority": {"type": "string", "enum": ["critical", "high", "medium"]},
          "suggestion": {"type": "string"}
        },
        "required": ["name"],
        "additionalProperties": false
      }
    },
    "summary": {"type": "string"}
  },
  "required": ["match_score", "matching_skills", "missing_skills"],
  "additionalProperties": false
}`

const gapPromptTemplate = `You are given a person's skill inventory and a target role. Assess how well the
inventory fits the role and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "matching_skills" lists inventory skill names relevant to the role, copied verbatim from the inventory.
- "missing_skills" lists skills the role typically requires that the inventory lacks.
- "priority" reflects how blocking the gap is: "critical" blocks hiring, "high" weakens the application, "medium" is nice to have.
- "suggestion" is one concrete step to close the gap.
- "summary" is two sentences at most.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const rewriteResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "skill_name": {"type": "string"},
          "original": {"type": "string"},
          "rewrite": {"type": "string"},
          "rationale": {"type": "string"}
        },
        "required": ["skill_name", "rewrite"],
        "additionalProperties": false
      }
    }
  },
  "required": ["suggestions"],
  "additionalProperties": false
}`

const rewritePromptTemplate = `You are given a person's skill inventory (with supporting evidence snippets) and a
target role. Propose improved CV bullet points that present the evidence in the strongest honest light for that
role, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "skill_name" must be copied verbatim from the inventory.
- "original" is the evidence snippet being improved; "rewrite" is the suggested bullet.
- Rewrites must stay truthful to the evidence. Quantify only what the evidence quantifies.
- "rationale" is one sentence on why the rewrite lands better.
- At most one suggestion per skill. Skip skills with no usable evidence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const clusterResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "clusters": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  },
  "required": ["clusters"],
  "additionalProperties": false
}`

const clusterPromptTemplate = `Assign each of the given skill names to a category and return the mapping as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "clusters" maps each input skill name, copied verbatim, to exactly one of: %s.
- Use "Other" when nothing fits. Never invent a new category.
- Include every input name exactly once.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildExtractionPrompt creates the extraction system prompt with the
// evidence cap and cluster labels embedded.
func buildExtractionPrompt(maxEvidence int) string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		maxEvidence,
		strings.Join(ai.Clusters, ", "))
}

// buildGapPrompt creates the gap analysis system prompt.
func buildGapPrompt() string {
	return fmt.Sprintf(gapPromptTemplate, gapResponseSchema)
}

// buildRewritePrompt creates the CV rewrite system prompt.
func buildRewritePrompt() string {
	return fmt.Sprintf(rewritePromptTemplate, rewriteResponseSchema)
}

// buildClusterPrompt creates the reclustering system prompt.
func buildClusterPrompt() string {
	return fmt.Sprintf(clusterPromptTemplate,
		clusterResponseSchema,
		strings.Join(ai.Clusters, ", "))
}
