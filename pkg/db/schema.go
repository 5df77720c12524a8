package db

// schema is the expected layout of a fee database. Open only reads; InitSchema
// exists to create an empty database with this layout.
const schema = `
PRAGMA foreign_keys = ON;

-- Students: display names joined onto results
CREATE TABLE IF NOT EXISTS students (
    student_id TEXT PRIMARY KEY,
    name TEXT
);

-- Fees: one row per payment
CREATE TABLE IF NOT EXISTS fees (
    fee_id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id TEXT NOT NULL,
    fee_submission_date TIMESTAMP,
    amount REAL
);

CREATE INDEX IF NOT EXISTS idx_fees_student ON fees(student_id);
`
