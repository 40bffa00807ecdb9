package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore is the production Store, one top-level collection per report
// type. A collection prefix keeps multiple deployments apart within the
// same project.
type Firestore struct {
	client *firestore.Client
	prefix string
}

// NewFirestore connects to a Firestore project. credentialsFile may be
// empty, in which case application default credentials apply.
func NewFirestore(ctx context.Context, projectID, credentialsFile, prefix string) (*Firestore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id cannot be empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Firestore{client: client, prefix: prefix}, nil
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) collection(name string) *firestore.CollectionRef {
	return f.client.Collection(f.prefix + name)
}

// Insert adds a document and returns the store-assigned ID.
func (f *Firestore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	ref, _, err := f.collection(collection).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return ref.ID, nil
}

// ExistsByField runs an equality-filtered lookup limited to one result.
func (f *Firestore) ExistsByField(ctx context.Context, collection, field, value string) (bool, error) {
	iter := f.collection(collection).Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s.%s: %w", collection, field, err)
	}
	return true, nil
}

// List scans the full collection.
func (f *Firestore) List(ctx context.Context, collection string) ([]Document, error) {
	iter := f.collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// Delete removes a document by ID. Firestore deletes are idempotent, so a
// missing document is not an error.
func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	if _, err := f.collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
