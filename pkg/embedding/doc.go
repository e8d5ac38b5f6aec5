// Package embedding computes dense vector representations of text
// through an OpenAI-compatible inference API.
//
// The public entrypoint is Client, which hides the provider details.
// The retrieval core issues exactly one Embed call per hybrid query;
// an embedding failure is fatal to that query, because no semantic
// signal can be produced without a vector.
//
// Usage:
//
//	client, err := embedding.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	vector, err := client.Embed(ctx, "monthly revenue by region")
package embedding
