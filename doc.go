// Package docuchat provides a Go client for a RAG document-QA service:
// upload PDFs, pose questions scoped to one document or the whole corpus,
// and hold multi-turn conversations whose history persists server-side.
//
// # Stateless API — direct service calls
//
//	client, _ := docuchat.New(docuchat.WithBaseURL("http://localhost:8000"))
//	receipt, _ := client.UploadDocument(ctx, pdfReader, "report.pdf")
//	docs, _ := client.ListDocuments(ctx)
//
// # Session API — stateful conversation orchestration
//
//	session := client.NewSession()
//	session.SelectDocument(receipt.ID, receipt.Filename)
//	answer, _ := session.SendMessage(ctx, "What is the executive summary?")
//	for _, src := range answer.Sources {
//	    fmt.Printf("p.%d (%.0f%%): %s\n", src.Page, src.Score*100, src.Content)
//	}
//
// A Session owns the active (document, conversation) scope, applies
// optimistic message insertion ahead of network confirmation, and adopts
// conversations the server creates implicitly on the first query.
package docuchat
