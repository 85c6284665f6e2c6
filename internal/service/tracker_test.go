package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"manga_tracker/internal/config"
	"manga_tracker/internal/domain"
	"manga_tracker/internal/page"
	"manga_tracker/internal/scanlator"
	"manga_tracker/internal/service/mocks"
	"manga_tracker/testdata/utils"
)

const jobWait = 5 * time.Second

type TrackerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	mappings *mocks.MockMappingStore
	chapters *mocks.MockChapterStore
	errs     *mocks.MockErrorStore
	targets  *mocks.MockTargetStore
	resolver *mocks.MockAdapterResolver
	pages    *mocks.MockPageFactory
	notifier *mocks.MockNotifier

	tracker *Tracker
	logger  *slog.Logger
}

func (s *TrackerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mappings = mocks.NewMockMappingStore(s.ctrl)
	s.chapters = mocks.NewMockChapterStore(s.ctrl)
	s.errs = mocks.NewMockErrorStore(s.ctrl)
	s.targets = mocks.NewMockTargetStore(s.ctrl)
	s.resolver = mocks.NewMockAdapterResolver(s.ctrl)
	s.pages = mocks.NewMockPageFactory(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := config.TrackingConfig{
		Interval:    time.Minute,
		DelayMin:    time.Millisecond,
		DelayMax:    2 * time.Millisecond,
		PageTimeout: time.Second,
	}

	s.tracker = NewTracker(
		s.mappings,
		s.chapters,
		s.errs,
		s.targets,
		s.resolver,
		s.pages,
		s.notifier,
		s.logger,
		cfg,
	)
}

func (s *TrackerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

// stubAdapter returns canned chapters, or fails, depending on the mapping URL
// it is asked to fetch.
type stubAdapter struct {
	chapters map[string][]domain.RawChapter
	failures map[string]error
}

func (a *stubAdapter) Name() string { return "stub" }

func (a *stubAdapter) Search(_ context.Context, _ string) ([]scanlator.SearchResult, error) {
	return nil, nil
}

func (a *stubAdapter) FetchChapters(_ context.Context, targetURL string) ([]domain.RawChapter, error) {
	if err, ok := a.failures[targetURL]; ok {
		return nil, err
	}
	return a.chapters[targetURL], nil
}

func (s *TrackerTestSuite) expectAdapter(adapter scanlator.Scanlator) {
	ctor := scanlator.Constructor(func(_ page.Page, _ *slog.Logger) scanlator.Scanlator {
		return adapter
	})
	s.resolver.EXPECT().Resolve("stub").Return(ctor, true).AnyTimes()
}

func (s *TrackerTestSuite) expectPage() *fakeJobPage {
	pg := &fakeJobPage{}
	s.pages.EXPECT().NewPage(gomock.Any()).Return(pg, nil)
	return pg
}

func (s *TrackerTestSuite) waitForJob(jobID string) domain.TrackingJob {
	s.Require().Eventually(func() bool {
		job, ok := s.tracker.GetStatus(jobID)
		return ok && job.Status.Terminal()
	}, jobWait, time.Millisecond)

	job, ok := s.tracker.GetStatus(jobID)
	s.Require().True(ok)
	return job
}

func mapping(id int64, url string) domain.SourceMapping {
	return domain.SourceMapping{
		ID:            id,
		TargetID:      100 + id,
		SiteID:        1,
		URL:           url,
		Verified:      true,
		TargetTitle:   fmt.Sprintf("Series %d", id),
		SiteName:      "Stub Scans",
		SiteAdapterID: "stub",
	}
}

func (s *TrackerTestSuite) TestTrack_NewChapters() {
	m := mapping(1, "https://stub.example/series/one")
	published := time.Now().Add(-24 * time.Hour)

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	pg := s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {
			{Number: "1", URL: m.URL + "/chapter-1", PublishedAt: &published},
			{Number: "2", Title: utils.Ptr("The Return"), URL: m.URL + "/chapter-2"},
		},
	}})

	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "1").Return(false, nil)
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "2").Return(false, nil)
	s.chapters.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(1, job.TotalMappings)
	s.Equal(1, job.ProcessedMappings)
	s.Equal(2, job.NewChapters)
	s.Empty(job.Errors)
	s.Require().Len(job.Found, 2)
	s.Equal("Series 1", job.Found[0].TargetTitle)
	s.Equal("1", job.Found[0].Number)
	s.Equal("2", job.Found[1].Number)
	s.Equal("The Return", *job.Found[1].Title)
	s.Equal("Stub Scans", job.Found[1].SiteName)
	s.NotNil(job.StartedAt)
	s.NotNil(job.CompletedAt)
	s.True(pg.closed)
}

func (s *TrackerTestSuite) TestTrack_SecondRunFindsNothing() {
	m := mapping(1, "https://stub.example/series/one")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {{Number: "5", URL: m.URL + "/chapter-5"}},
	}})

	// Everything the adapter reports is already stored.
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "5").Return(true, nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(0, job.NewChapters)
	s.Empty(job.Found)
}

func (s *TrackerTestSuite) TestTrack_InsertRaceIsNotNew() {
	m := mapping(1, "https://stub.example/series/one")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {{Number: "5", URL: m.URL + "/chapter-5"}},
	}})

	// Exists misses but another run inserted the row first.
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "5").Return(false, nil)
	s.chapters.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(0, job.NewChapters)
	s.Empty(job.Errors)
}

func (s *TrackerTestSuite) TestTrack_FailureIsolation() {
	one := mapping(1, "https://stub.example/series/one")
	two := mapping(2, "https://stub.example/series/two")
	three := mapping(3, "https://stub.example/series/three")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).
		Return([]domain.SourceMapping{one, two, three}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{
		chapters: map[string][]domain.RawChapter{
			one.URL:   {{Number: "1", URL: one.URL + "/chapter-1"}},
			three.URL: {{Number: "9", URL: three.URL + "/chapter-9"}},
		},
		failures: map[string]error{
			two.URL: fmt.Errorf("%w: connection refused", page.ErrNavigation),
		},
	})

	s.chapters.EXPECT().Exists(gomock.Any(), one.ID, "1").Return(false, nil)
	s.chapters.EXPECT().Exists(gomock.Any(), three.ID, "9").Return(false, nil)
	s.chapters.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	var recorded *domain.ScrapingError
	s.errs.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.ScrapingError) error {
			recorded = e
			return nil
		})

	// Last-checked is touched even for the failed mapping.
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(3, job.TotalMappings)
	s.Equal(3, job.ProcessedMappings)
	s.Equal(2, job.NewChapters)
	s.Require().Len(job.Errors, 1)
	s.Contains(job.Errors[0], "Series 2")

	s.Require().NotNil(recorded)
	s.Equal("navigation", recorded.ErrorType)
	s.Require().NotNil(recorded.MappingID)
	s.Equal(two.ID, *recorded.MappingID)
}

func (s *TrackerTestSuite) TestTrack_UnknownAdapter() {
	m := mapping(1, "https://stub.example/series/one")
	m.SiteAdapterID = "nonexistent"

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.resolver.EXPECT().Resolve("nonexistent").Return(nil, false)
	s.errs.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(1, job.ProcessedMappings)
	s.Equal(0, job.NewChapters)
	s.Require().Len(job.Errors, 1)
	s.Contains(job.Errors[0], "nonexistent")
}

func (s *TrackerTestSuite) TestTrack_NoEligibleMappings() {
	s.mappings.EXPECT().
		Eligible(gomock.Any(), gomock.AssignableToTypeOf((*int64)(nil)), gomock.AssignableToTypeOf((*int64)(nil))).
		Return(nil, nil)

	jobID := s.tracker.Trigger(utils.Ptr(int64(42)), nil, true)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(0, job.TotalMappings)
	s.Equal(0, job.ProcessedMappings)
}

func (s *TrackerTestSuite) TestTrack_EligibleQueryFails() {
	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).
		Return(nil, errors.New("connection reset"))

	jobID := s.tracker.Trigger(nil, nil, false)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobFailed, job.Status)
	s.Require().Len(job.Errors, 1)
	s.Contains(job.Errors[0], "eligible mappings")
	s.NotNil(job.CompletedAt)
}

func (s *TrackerTestSuite) TestTrack_NotifiesOnNewChapters() {
	m := mapping(1, "https://stub.example/series/one")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {{Number: "7", URL: m.URL + "/chapter-7"}},
	}})
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "7").Return(false, nil)
	s.chapters.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	notified := make(chan []domain.NewChapterSummary, 1)
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, chapters []domain.NewChapterSummary) error {
			notified <- chapters
			return nil
		})

	jobID := s.tracker.Trigger(nil, nil, true)
	job := s.waitForJob(jobID)
	s.Equal(domain.JobCompleted, job.Status)

	select {
	case chapters := <-notified:
		s.Require().Len(chapters, 1)
		s.Equal("7", chapters[0].Number)
	case <-time.After(jobWait):
		s.Fail("notifier was not called")
	}
}

func (s *TrackerTestSuite) TestTrack_NotifierFailureDoesNotFailJob() {
	m := mapping(1, "https://stub.example/series/one")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {{Number: "7", URL: m.URL + "/chapter-7"}},
	}})
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "7").Return(false, nil)
	s.chapters.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	done := make(chan struct{})
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []domain.NewChapterSummary) error {
			close(done)
			return errors.New("webhook: 503")
		})

	jobID := s.tracker.Trigger(nil, nil, true)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Empty(job.Errors)

	select {
	case <-done:
	case <-time.After(jobWait):
		s.Fail("notifier was not called")
	}
}

func (s *TrackerTestSuite) TestTrack_NoNotifyWhenNothingNew() {
	m := mapping(1, "https://stub.example/series/one")

	s.mappings.EXPECT().Eligible(gomock.Any(), nil, nil).Return([]domain.SourceMapping{m}, nil)
	s.expectPage()
	s.expectAdapter(&stubAdapter{chapters: map[string][]domain.RawChapter{
		m.URL: {{Number: "5", URL: m.URL + "/chapter-5"}},
	}})
	s.chapters.EXPECT().Exists(gomock.Any(), m.ID, "5").Return(true, nil)
	s.targets.EXPECT().TouchLastChecked(gomock.Any(), m.TargetID).Return(nil)

	// notify=true, but no Notify expectation: a call would fail the suite.
	jobID := s.tracker.Trigger(nil, nil, true)
	job := s.waitForJob(jobID)

	s.Equal(domain.JobCompleted, job.Status)
	s.Equal(0, job.NewChapters)
}

func (s *TrackerTestSuite) TestGetStatus_UnknownJob() {
	_, ok := s.tracker.GetStatus("6f4e9a1c-0000-0000-0000-000000000000")
	s.False(ok)
}

// fakeJobPage satisfies page.Page for tracker tests; the stub adapters never
// actually drive it.
type fakeJobPage struct {
	closed bool
}

func (p *fakeJobPage) Navigate(_ context.Context, _ string) error { return nil }

func (p *fakeJobPage) WaitFor(_ context.Context, _ string, _ time.Duration) bool { return true }

func (p *fakeJobPage) Find(_ string) *goquery.Selection { return &goquery.Selection{} }

func (p *fakeJobPage) Click(_ context.Context, _ string) bool { return false }

func (p *fakeJobPage) URL() string { return "" }

func (p *fakeJobPage) Close() error {
	p.closed = true
	return nil
}
