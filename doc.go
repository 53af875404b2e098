// Package portfolio computes realized capital gains from brokerage
// operations. It is designed to be local-first, auditable, and transparent:
// every profit figure can be traced back to the exact buy and sell
// operations that produced it.
//
// The core functionalities include:
//   - Ledger Management: Recording buy and sell operations per account in an
//     immutable, chronological record.
//   - FIFO Matching: Pairing each sell against the oldest open buy lots,
//     slicing lots as needed, so that every sell decomposes into matches
//     with a known acquisition cost.
//   - Currency Normalization: Converting each leg of a match into a single
//     target currency using the exchange rate of the leg's own date, with a
//     bounded lookback to the most recent published rate.
//   - Rate Management: Storing exchange rate series per currency pair, and
//     fetching missing series from a public provider.
//   - Data Persistence: Handling the encoding and decoding of ledgers and
//     rate tables to and from human-readable, version-controllable formats
//     (JSONL), and of broker data via CSV import/export.
//
// This package serves as the foundational logic for the `pfl` command-line
// tool, ensuring that all reports are consistent and based on a single
// source of truth.
package portfolio
