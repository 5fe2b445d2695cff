// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package subtests scores the individual screening activities before their
results reach the risk engine.

# Questionnaire

Each age bracket has its own parent questionnaire. Answers are
reverse-scored:

	Yes       = 0 points (concern)
	Sometimes = 1 point
	No        = 2 points

so a low total signals higher risk. [ScoreQuestionnaire] sums the answers
and categorizes the total with the bracket's cutoffs.

# Reading Fluency

Children aged 6-12 read a short passage aloud. The recording is
transcribed elsewhere; [EvaluateReading] compares the transcript with the
passage word by word and derives words-per-minute plus correct, error,
omitted and added word counts. There is no passage bank for ages 3-5.

# Pronunciation

[CheckPronunciation] scores a single target word against a transcript as
1 (heard) or 0.

# Payload Schemas

[ValidatePayload] checks an uploaded sub-test result against a JSON Schema
for its test type before it is stored.
*/
package subtests
