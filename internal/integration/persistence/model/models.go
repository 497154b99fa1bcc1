package model

// All returns every persisted model, in dependency order, for schema creation.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&BudgetModel{},
		&EmailQueueModel{},
	}
}
