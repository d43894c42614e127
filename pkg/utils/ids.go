package utils

import "github.com/google/uuid"

// GenMemoID returns a fresh identifier for a community memo.
func GenMemoID() string { return "memo_" + uuid.NewString() }

// GenThreadID returns a fresh identifier for a contact thread.
func GenThreadID() string { return "thread_" + uuid.NewString() }

// GenMessageID returns a fresh identifier for a contact message.
func GenMessageID() string { return "msg_" + uuid.NewString() }
