package corpus

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeConnector struct {
	existing  []*entity.Corpus
	deleteErr map[string]error
	listErr   error
	createErr error
	importErr error

	listCalls   int
	deleted     []string
	created     []*entity.CorpusSpec
	importedFor []string
}

func (f *fakeConnector) ListCorpora(context.Context) ([]*entity.Corpus, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeConnector) DeleteCorpus(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr[name]
}

func (f *fakeConnector) CreateCorpus(_ context.Context, spec *entity.CorpusSpec) (*entity.Corpus, error) {
	f.created = append(f.created, spec)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Corpus{
		Name:           fmt.Sprintf("projects/p1/locations/us-central1/ragCorpora/new-%d", len(f.created)),
		DisplayName:    spec.DisplayName,
		EmbeddingModel: "projects/p1/locations/us-central1/" + spec.EmbeddingModel,
		CreateTime:     time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeConnector) StartImport(_ context.Context, corpusName string, spec *entity.CorpusSpec) (*entity.ImportJob, error) {
	f.importedFor = append(f.importedFor, corpusName)
	if f.importErr != nil {
		return nil, f.importErr
	}
	return &entity.ImportJob{
		Operation:  corpusName + "/operations/op-1",
		CorpusName: corpusName,
		SourceURIs: spec.SourceURIs,
		StartedAt:  time.Now(),
	}, nil
}

func (f *fakeConnector) calls() int {
	return f.listCalls + len(f.deleted) + len(f.created) + len(f.importedFor)
}

type fakeJournal struct {
	recorded  []*entity.ImportJob
	recordErr error
	limit     int
}

func (j *fakeJournal) Record(_ context.Context, job *entity.ImportJob) (*entity.ImportJob, error) {
	if j.recordErr != nil {
		return nil, j.recordErr
	}
	j.recorded = append(j.recorded, job)
	return job, nil
}

func (j *fakeJournal) ListRecent(_ context.Context, limit int) ([]*entity.ImportJob, error) {
	j.limit = limit
	return j.recorded, nil
}

type fakeChecker struct {
	counts map[string]int
	err    error
	seen   []string
}

func (c *fakeChecker) CountObjects(_ context.Context, uri string) (int, error) {
	c.seen = append(c.seen, uri)
	return c.counts[uri], c.err
}

func corpora(n int) []*entity.Corpus {
	out := make([]*entity.Corpus, n)
	for i := range out {
		out[i] = &entity.Corpus{Name: fmt.Sprintf("projects/p1/locations/us-central1/ragCorpora/%d", i)}
	}
	return out
}

func newUsecase(conn RagConnector, deleteExisting bool, journal ImportJobRepository, checker SourceChecker) *CorpusUsecase {
	return NewUsecase(Settings{
		ProjectID:      "p1",
		DeleteExisting: deleteExisting,
		Spec:           entity.DefaultCorpusSpec(),
	}, conn, checker, journal, zap.NewNop())
}

func TestCreateAndImportWithoutDeleteFlagNeverDeletes(t *testing.T) {
	conn := &fakeConnector{existing: corpora(5)}
	journal := &fakeJournal{}

	res, err := newUsecase(conn, false, journal, nil).CreateAndImport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, conn.deleted)
	assert.Equal(t, 1, conn.listCalls)
	require.Len(t, conn.created, 1)
	assert.Equal(t, entity.DefaultCorpusDisplayName, conn.created[0].DisplayName)
	assert.Equal(t, []string{res.CorpusName}, conn.importedFor)
	assert.Equal(t, res.CorpusName+"/operations/op-1", res.ImportOperation)
	assert.Zero(t, res.DeletedCorpora)
	require.Len(t, journal.recorded, 1)
}

func TestCreateAndImportDeletesAllEvenWhenOneFails(t *testing.T) {
	existing := corpora(4)
	conn := &fakeConnector{
		existing: existing,
		deleteErr: map[string]error{
			existing[1].Name: errors.New("permission denied"),
		},
	}

	res, err := newUsecase(conn, true, &fakeJournal{}, nil).CreateAndImport(context.Background())
	require.NoError(t, err)

	require.Len(t, conn.deleted, 4)
	for i, c := range existing {
		assert.Equal(t, c.Name, conn.deleted[i])
	}
	assert.Equal(t, 3, res.DeletedCorpora)
	assert.Equal(t, 1, res.FailedDeletions)
	assert.Len(t, conn.created, 1)
	assert.Len(t, conn.importedFor, 1)
	// one listing before deletion and one to report what is left
	assert.Equal(t, 2, conn.listCalls)
}

func TestCreateAndImportWithoutProjectMakesNoCalls(t *testing.T) {
	conn := &fakeConnector{existing: corpora(2)}
	uc := NewUsecase(Settings{DeleteExisting: true, Spec: entity.DefaultCorpusSpec()}, conn, nil, &fakeJournal{}, zap.NewNop())

	_, err := uc.CreateAndImport(context.Background())
	assert.ErrorIs(t, err, entity.ErrProjectNotConfigured)
	assert.Zero(t, conn.calls())
}

func TestCreateAndImportWithNilConnector(t *testing.T) {
	uc := NewUsecase(Settings{Spec: entity.DefaultCorpusSpec()}, nil, nil, &fakeJournal{}, zap.NewNop())

	_, err := uc.CreateAndImport(context.Background())
	assert.ErrorIs(t, err, entity.ErrProjectNotConfigured)
}

func TestCreateAndImportFailures(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		conn := &fakeConnector{listErr: errors.New("unavailable")}

		_, err := newUsecase(conn, false, &fakeJournal{}, nil).CreateAndImport(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
		assert.Empty(t, conn.created)
	})

	t.Run("create fails", func(t *testing.T) {
		conn := &fakeConnector{createErr: errors.New("quota exceeded")}

		_, err := newUsecase(conn, false, &fakeJournal{}, nil).CreateAndImport(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Empty(t, conn.importedFor)
	})

	t.Run("import fails after corpus was created", func(t *testing.T) {
		conn := &fakeConnector{importErr: errors.New("invalid gcs uri")}
		journal := &fakeJournal{}

		res, err := newUsecase(conn, false, journal, nil).CreateAndImport(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid gcs uri")
		require.NotNil(t, res)
		assert.NotEmpty(t, res.CorpusName)
		assert.Empty(t, journal.recorded)
	})

	t.Run("journal failure is not fatal", func(t *testing.T) {
		conn := &fakeConnector{}

		res, err := newUsecase(conn, false, &fakeJournal{recordErr: errors.New("db down")}, nil).CreateAndImport(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, res.ImportOperation)
	})
}

func TestCreateAndImportRepeatedIsAdditive(t *testing.T) {
	conn := &fakeConnector{}
	uc := newUsecase(conn, false, &fakeJournal{}, nil)

	first, err := uc.CreateAndImport(context.Background())
	require.NoError(t, err)
	second, err := uc.CreateAndImport(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.CorpusName, second.CorpusName)
	assert.Len(t, conn.created, 2)
}

func TestCreateAndImportSourceVerificationIsAdvisory(t *testing.T) {
	spec := entity.DefaultCorpusSpec()

	t.Run("empty prefix", func(t *testing.T) {
		conn := &fakeConnector{}
		checker := &fakeChecker{}

		_, err := newUsecase(conn, false, &fakeJournal{}, checker).CreateAndImport(context.Background())
		require.NoError(t, err)
		assert.Equal(t, spec.SourceURIs, checker.seen)
		assert.Len(t, conn.created, 1)
	})

	t.Run("unreadable prefix", func(t *testing.T) {
		conn := &fakeConnector{}
		checker := &fakeChecker{err: errors.New("403")}

		_, err := newUsecase(conn, false, &fakeJournal{}, checker).CreateAndImport(context.Background())
		require.NoError(t, err)
		assert.Len(t, conn.importedFor, 1)
	})
}

func TestListImportsClampsLimit(t *testing.T) {
	journal := &fakeJournal{}
	uc := newUsecase(&fakeConnector{}, false, journal, nil)

	_, err := uc.ListImports(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, journal.limit)

	_, err = uc.ListImports(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, journal.limit)

	_, err = uc.ListImports(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, journal.limit)
}

func TestCreateAndImportLogsCreatedCorpus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))
	conn := &fakeConnector{}

	res, err := newUsecase(conn, false, &fakeJournal{}, nil).CreateAndImport(ctx)
	require.NoError(t, err)

	created := logs.FilterMessage("new corpus created").All()
	require.Len(t, created, 1)
	fields := created[0].ContextMap()
	assert.Equal(t, res.CorpusName, fields["corpus"])
	assert.Equal(t, "projects/p1/locations/us-central1/"+entity.DefaultEmbeddingModel, fields["embedding_model"])
	assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), fields["create_time"])
}
