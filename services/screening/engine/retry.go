// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// RetryQueue holds questions whose answers failed validation, in FIFO
// order. A question re-enters at the tail after a repeat failure, so two
// rejections of different questions are re-asked in the order they first
// failed.
//
// The queue enforces a breather: the head is only handed back once the
// user has answered something else since it was enqueued. Interleaving a
// fresh question between failures avoids hammering the user with the same
// prompt twice in a row. RetryQueue is not safe for concurrent use; the
// owning session serializes access.
type RetryQueue struct {
	items []datatypes.RetryItem
}

// Enqueue appends a retry item, stamping it with the current time and the
// caller's accepted-answer sequence number. The sequence stamp is what the
// breather compares against later.
func (rq *RetryQueue) Enqueue(questionID, reason, lastAnswer string, attempts, answerSeq int) {
	rq.items = append(rq.items, datatypes.RetryItem{
		QuestionID: questionID,
		Reason:     reason,
		Attempts:   attempts,
		LastAnswer: lastAnswer,
		EnqueuedAt: time.Now(),
		EnqueueSeq: answerSeq,
	})
}

// DequeueIfReady pops and returns the head item when the breather is
// satisfied: at least one answer has been accepted since the head was
// enqueued, and the most recently answered question is not the head
// itself. Returns false without mutating the queue otherwise.
func (rq *RetryQueue) DequeueIfReady(answerSeq int, lastAnsweredID string) (datatypes.RetryItem, bool) {
	if len(rq.items) == 0 {
		return datatypes.RetryItem{}, false
	}
	head := rq.items[0]
	if answerSeq <= head.EnqueueSeq || lastAnsweredID == head.QuestionID {
		return datatypes.RetryItem{}, false
	}
	rq.items = rq.items[1:]
	return head, true
}

// Dequeue pops the head unconditionally. The session uses this when no
// forward question remains and waiting the breather out would stall the
// interview.
func (rq *RetryQueue) Dequeue() (datatypes.RetryItem, bool) {
	if len(rq.items) == 0 {
		return datatypes.RetryItem{}, false
	}
	head := rq.items[0]
	rq.items = rq.items[1:]
	return head, true
}

// Len reports the number of queued retries.
func (rq *RetryQueue) Len() int { return len(rq.items) }

// QueuedIDs returns the queued question ids in order. The selection
// strategies exclude these from forward picks.
func (rq *RetryQueue) QueuedIDs() []string {
	ids := make([]string, len(rq.items))
	for i, it := range rq.items {
		ids[i] = it.QuestionID
	}
	return ids
}
