package store

// Table descriptors for every CRDT table in the schema. These are the only
// per-table knowledge upsertConditional and insertOnce need; each Upsert*
// method in merge.go passes one of them, and pkg/sync/core binds each
// models.OperationType to one of those methods.

var cardDescriptor = TableDescriptor{
	KeyColumns: []string{"user_id", "card_id"},
	MergeColumns: []string{
		"due", "stability", "difficulty", "elapsed_days", "scheduled_days",
		"reps", "lapses", "state", "last_review",
		"last_modified", "last_modified_client", "seq_no",
	},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var cardContentDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "card_id"},
	MergeColumns:     []string{"front", "back", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var cardDeletedDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "card_id"},
	MergeColumns:     []string{"deleted", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var cardBookmarkedDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "card_id"},
	MergeColumns:     []string{"bookmarked", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var cardSuspendedDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "card_id"},
	MergeColumns:     []string{"suspended", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var deckDescriptor = TableDescriptor{
	KeyColumns: []string{"user_id", "deck_id"},
	MergeColumns: []string{
		"name", "description", "deleted",
		"last_modified", "last_modified_client", "seq_no",
	},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var reviewLogKeyColumns = []string{"user_id", "review_log_id"}

var reviewLogDeletedDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "review_log_id"},
	MergeColumns:     []string{"deleted", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"last_modified", "last_modified_client"},
}

var cardDeckDescriptor = TableDescriptor{
	KeyColumns:       []string{"user_id", "card_id", "deck_id"},
	MergeColumns:     []string{"cl_count", "last_modified", "last_modified_client", "seq_no"},
	DominanceColumns: []string{"cl_count"},
}
