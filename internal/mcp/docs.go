package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `smartcredit keeps a shop's customer credit ledger: who owes how much, and whether they have paid.

Core concepts:
- Record: one credit entry (id, name, phone, amount, note, date, due, paid).
- Amount: kept exactly as entered; totals read the leading number and treat anything unparsable as 0.
- Pending: a record that is not paid. The pending total sums unpaid amounts.

Default workflow:
1) Orient: get_summary, then list_records with search/status filters.
2) Change: add_record / update_record / mark_paid / delete_record. Stale ids are silent no-ops (changed=false).
3) Clean up: prune_paid removes every paid record.
4) Remind: build_reminder returns a WhatsApp link with the message pre-filled.
5) Safety: export_backup before bulk changes; import_backup replaces everything.

Docs:
- smartcredit://docs/index
- smartcredit://docs/records
- smartcredit://docs/backup
- smartcredit://docs/reminders
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "smartcredit://docs/index",
		Name:        "docs_index",
		Title:       "smartcredit docs index",
		Description: "Entry point: which tool does what and which doc to read next.",
		Content: `# smartcredit: Agent Docs Index

## Quick start

1. ` + "`get_summary`" + ` for counts and the pending total.
2. ` + "`list_records`" + ` with ` + "`search`" + ` (name substring, case-insensitive) and ` + "`status`" + ` (all, paid, unpaid).
3. Mutate with ` + "`add_record`" + `, ` + "`update_record`" + `, ` + "`mark_paid`" + `, ` + "`delete_record`" + `, ` + "`prune_paid`" + `.
4. ` + "`get_activity`" + ` shows what changed and when.

## Docs

- ` + "`smartcredit://docs/records`" + ` fields, validation and amounts.
- ` + "`smartcredit://docs/backup`" + ` backup format and restore rules.
- ` + "`smartcredit://docs/reminders`" + ` reminder links.

## Limitations

- There is no way to mark a paid record unpaid again; edit it or add a new record.
- Amounts are free text; there is no currency handling.
`,
	},
	{
		URI:         "smartcredit://docs/records",
		Name:        "docs_records",
		Title:       "Records and amounts",
		Description: "Record fields, required values, ID rules and how amounts are totalled.",
		Content: `# Records

| field | notes |
|---|---|
| id | assigned on add, unique, never reused by add |
| name | required, trimmed |
| phone | optional; needed for reminders |
| amount | required, kept as entered |
| note | optional |
| date | YYYY-MM-DD, defaults to today |
| due | YYYY-MM-DD or null |
| paid | false on add; mark_paid sets it |

## Validation

Add and update reject an empty name or amount with ` + "`INVALID_INPUT`" + ` and change nothing.

## Amounts

Totals read the leading decimal number of each amount: ` + "`\"100\"`" + ` is 100, ` + "`\"12.5kg\"`" + ` is 12.5, ` + "`\"abc\"`" + ` is 0.

## Stale ids

update_record, mark_paid and delete_record on an id that no longer exists succeed with ` + "`changed: false`" + `.
`,
	},
	{
		URI:         "smartcredit://docs/backup",
		Name:        "docs_backup",
		Title:       "Backup and restore",
		Description: "Backup file format, naming and what import accepts.",
		Content: `# Backup

` + "`export_backup`" + ` returns the ledger as JSON text (file name ` + "`SmartCreditManager-Backup.json`" + `).

A backup is a JSON array of record objects. ` + "`import_backup`" + ` replaces the whole ledger:

- not JSON: ` + "`UNREADABLE_BACKUP`" + `
- JSON but not an array of records, or duplicate ids: ` + "`INVALID_BACKUP`" + `

A rejected import leaves the ledger untouched.
`,
	},
	{
		URI:         "smartcredit://docs/reminders",
		Name:        "docs_reminders",
		Title:       "Payment reminders",
		Description: "How reminder links and messages are built.",
		Content: `# Reminders

` + "`build_reminder`" + ` returns a ` + "`https://wa.me/<country><phone>?text=...`" + ` link. The country code defaults to 91.

Message:

    Dear <name>,

    You have ₹<amount> pending. Please clear it soon.

    Thank you!

Records without a phone number fail with ` + "`MISSING_PHONE`" + `.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
