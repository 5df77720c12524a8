package help

const ColdstartYAML = `# feeday Quick Start

inputs:
  fees: "student_id, fee_submission_date (any other columns are carried along)"
  students: "student_id, name (optional, only used for names in output)"
  sources:
    csv: "Comma separated files (default)"
    xlsx: "First sheet, or --sheet NAME"
    sqlite: "--fees points at a database with fees and students tables"

partition_strategies:
  key: "Each student lands in exactly one chunk; parallel equals sequential (default)"
  range: "Contiguous row ranges; students spanning chunks are reported and may differ"

commands:
  sequential: |
    feeday analyze --fees fees.csv --students students.csv

  compare: |
    feeday compare --chunks 8 --workers 4

  range_chunks: |
    feeday compare --partition range --chunks 4

  one_student: |
    feeday students 1042 1043

  structured_output: |
    feeday --format yaml compare --sample 20
    feeday --format json analyze --source sqlite --fees fees.db

configuration:
  order: "defaults < --config file < .env < FEEDAY_* environment < flags"
  example_file: |
    source: csv
    fees: data/fees.csv
    students: data/students.csv
    chunks: 8
    partition: key
    format: text
    sample: 10
  environment:
    - "FEEDAY_FEES=data/fees.csv"
    - "FEEDAY_CHUNKS=8"
    - "FEEDAY_PARTITION=range"

exit_codes:
  0: "success"
  1: "invalid flags or configuration"
  2: "input could not be read or a record failed to process"
`
