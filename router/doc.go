// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the dyscover screening API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store.New(conn, driver), cfg, profile, recommender)

A nil profile scores with the default constants; a nil recommender keeps
the fixed recommendation lists.

# Endpoints

Health:

	GET /health

Assessments (all but create require X-Access-Key):

	POST /api/assessments                - Start a screening session
	GET  /api/assessments/{id}           - Session with raw results
	GET  /api/assessments/{id}/results   - Raw results only
	POST /api/assessments/{id}/results   - Save one sub-test result
	POST /api/assessments/{id}/complete  - Mark finished
	GET  /api/assessments/{id}/risk      - Risk classification
	GET  /api/assessments/{id}/report    - Plain-text summary

Sub-test helpers (public, stateless):

	GET  /api/questionnaire/{group} - Question bank
	POST /api/questionnaire/score   - Score answers
	GET  /api/reading/passage       - Reading passage
	POST /api/reading/evaluate      - Compare a transcript to a passage
	POST /api/pronunciation/check   - Match a spoken word

Export (requires X-Export-Key):

	GET /api/export?format=csv|xlsx

Every API route is wrapped with request logging.
*/
package router
