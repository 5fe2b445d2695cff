// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dyscover API.

# Handler Types

  - AssessmentHandler: Assessment lifecycle, results, risk and reports
  - ScreeningHandler: Stateless sub-test helpers (questionnaires, passages,
    transcript scoring)
  - ExportHandler: Research dataset download

Handlers are created via constructor functions:

	assessmentHandler := handlers.NewAssessmentHandler(st, cfg, profile, recommender)

# Assessment Lifecycle

	POST /api/assessments                → CreateAssessment (returns access_key)
	POST /api/assessments/{id}/results   → SaveResult (create or overwrite one sub-test)
	POST /api/assessments/{id}/complete  → CompleteAssessment (idempotent)
	GET  /api/assessments/{id}/risk      → GetRisk (?personalized=true for LLM advice)
	GET  /api/assessments/{id}/report    → GetReport (plain text)

Every route under an assessment requires the X-Access-Key header issued
at creation. Risk is computed from the stored results on each request and
never persisted.

# Screening Helpers

	GET  /api/questionnaire/{group} → GetQuestionnaire
	POST /api/questionnaire/score   → ScoreQuestionnaire
	GET  /api/reading/passage       → GetPassage
	POST /api/reading/evaluate      → EvaluateReading
	POST /api/pronunciation/check   → CheckPronunciation

# Export

	GET /api/export?format=csv|xlsx → Export

Export requires the X-Export-Key header and is disabled when no export
key is configured.
*/
package handlers
