// Package cryptotax computes capital gains, cost basis and tax estimates for
// crypto asset transactions. It works offline on a list of transactions and
// keeps no state between calculations.
//
// The core functionalities include:
//   - Lot Matching: disposals consume acquisition lots in FIFO, LIFO or HIFO
//     order, producing one gain record per consumed lot, classified as short
//     or long term.
//   - Wash Sales: losses are flagged when the same asset is repurchased within
//     the configured window around the sale.
//   - Holdings: open positions with their remaining cost basis and an
//     unrealized gain valued at the last known transaction price.
//   - Recommendations: loss harvesting, holding period, method and timing
//     suggestions ranked by their potential savings.
//   - Income: mining income with self-employment tax, and NFT sales split
//     between collectible and regular rates.
//   - Data Exchange: CSV and JSONL import and export of transactions, CSV
//     export of gains, and a JSON encoding of reports.
//
// This package serves as the foundational logic for the `cgt` command-line
// tool.
package cryptotax
