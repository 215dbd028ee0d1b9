package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if missing and applies incremental
// updates. All statements are idempotent so the app can run them on every
// start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	tables := []string{
		`CREATE TABLE IF NOT EXISTS schools (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE(user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			UNIQUE(school_id, code)
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			class_id UUID REFERENCES classes(id),
			user_id UUID REFERENCES users(id),
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			student_no VARCHAR(50) NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			UNIQUE(school_id, student_no)
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			code VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL CHECK (type IN ('INCOME','EXPENSE','ASSET','LIABILITY')),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			UNIQUE(school_id, code)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			reference VARCHAR(50) NOT NULL,
			account_id UUID NOT NULL REFERENCES accounts(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			type VARCHAR(20) NOT NULL CHECK (type IN ('INCOME','EXPENSE')),
			date DATE NOT NULL,
			description VARCHAR(255) NOT NULL,
			notes TEXT,
			fee_payment_id UUID,
			staff_payment_id UUID,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			UNIQUE(school_id, reference)
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_sequences (
			school_id UUID NOT NULL REFERENCES schools(id),
			prefix VARCHAR(10) NOT NULL,
			year INT NOT NULL,
			value BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (school_id, prefix, year)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			name VARCHAR(255) NOT NULL,
			kind VARCHAR(20) NOT NULL CHECK (kind IN ('mandatory','optional')),
			description TEXT,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			UNIQUE(school_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS class_fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			class_id UUID REFERENCES classes(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			due_date DATE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS fee_eligibility (
			class_fee_id UUID NOT NULL REFERENCES class_fees(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (class_fee_id, student_id)
		)`,
		`CREATE TABLE IF NOT EXISTS optional_fee_opt_ins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			student_id UUID NOT NULL REFERENCES students(id),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			class_id UUID NOT NULL REFERENCES classes(id),
			opted_in_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE(student_id, fee_type_id, class_id)
		)`,
		`CREATE TABLE IF NOT EXISTS student_fee_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			student_id UUID NOT NULL REFERENCES students(id),
			class_fee_id UUID NOT NULL REFERENCES class_fees(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			method VARCHAR(50),
			gateway_reference VARCHAR(100),
			paid_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			name VARCHAR(255) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS budget_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			budget_id UUID NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
			account_id UUID NOT NULL REFERENCES accounts(id),
			budgeted_amount NUMERIC(12,2) NOT NULL CHECK (budgeted_amount >= 0),
			description TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE(budget_id, account_id)
		)`,
		`CREATE TABLE IF NOT EXISTS active_budgets (
			school_id UUID PRIMARY KEY REFERENCES schools(id),
			budget_id UUID NOT NULL REFERENCES budgets(id),
			activated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS staff_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			school_id UUID NOT NULL REFERENCES schools(id),
			staff_id UUID NOT NULL REFERENCES users(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			type VARCHAR(20) NOT NULL CHECK (type IN ('salary','bonus')),
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			paid_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			notes TEXT
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating table: %v", err)
			return err
		}
	}

	// Budget actuals aggregate over (account_id, date); payments aggregate
	// over (student_id, class_fee_id). Both need index support.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_date ON transactions(account_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_school_id ON transactions(school_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_fee_payment ON transactions(fee_payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_fee ON student_fee_payments(student_id, class_fee_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_class_fee ON student_fee_payments(class_fee_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_gateway_ref ON student_fee_payments(school_id, gateway_reference) WHERE gateway_reference IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_class_fees_fee_type ON class_fees(fee_type_id)`,
		`CREATE INDEX IF NOT EXISTS idx_class_fees_school ON class_fees(school_id)`,
		`CREATE INDEX IF NOT EXISTS idx_opt_ins_student ON optional_fee_opt_ins(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_budget_items_budget ON budget_items(budget_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_class ON students(class_id)`,
	}

	for _, m := range indexes {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running index migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	seeds := []string{
		`INSERT INTO roles (name, is_active) VALUES ('admin', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, is_active) VALUES ('bursar', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, is_active) VALUES ('teacher', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, is_active) VALUES ('student', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, is_active) VALUES ('parent', true) ON CONFLICT (name) DO NOTHING`,
	}

	for _, s := range seeds {
		if _, err := db.Exec(s); err != nil {
			log.Printf("Error seeding roles: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
