// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateAssessmentRequest: user {first, last, age, sex}
  - SaveResultRequest: type, payload
  - ScoreQuestionnaireRequest: group or age, answers
  - EvaluateReadingRequest: passage (or age + passage_index), transcript, duration_seconds
  - CheckPronunciationRequest: target, transcript

# Response Types

Types for JSON responses:

  - CreateAssessmentResponse: assessment_id, access_key, age_group
  - AssessmentResponse: demographics, timestamps, results
  - SaveResultResponse: type, stamped result
  - CompleteAssessmentResponse: completed_at
  - RiskResponse: the computed risk assessment plus recommendation source
  - PronunciationResponse: score (0 or 1)
  - ErrorResponse: error, message

# Headers

  - X-Access-Key: required on every per-assessment route
  - X-Export-Key: required on the dataset export
  - X-Request-ID: set on every response

# JSON Conventions

API envelope fields use snake_case. Sub-test payloads and the risk
assessment keep the camelCase names the screening front end stores
(savedAt, errorCount, compositeScore).
*/
package models
