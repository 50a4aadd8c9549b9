// Package registry connects the stock-take engine to the tool registry, the
// system of record for tool quantities.
//
// Two backends implement Registry:
//
//   - GormRegistry reads the tools and issuances tables of the service
//     database and joins the caller's transaction, so a correction accept
//     and its quantity change commit or roll back together.
//   - HTTPRegistry calls a REST registry. Response shapes vary between
//     deployments (bare arrays or arrays under data/items/results/tools,
//     numbers as strings) and are normalized here so nothing past this
//     package sees them.
//
// Search returns candidates in registry order; callers decide how to treat
// more than one.
package registry
