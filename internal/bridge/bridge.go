package bridge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/models"
	"github.com/holistia-mx/availability-engine/internal/reload"
	"github.com/holistia-mx/availability-engine/internal/synclock"
)

// Event ids stamped on everything this system writes to the external
// calendar. Sync must never re-import its own writes.
const (
	mirroredBlockPrefix       = "avblk"
	mirroredAppointmentPrefix = "appt"
)

type Bridge struct {
	repo   Repository
	client CalendarClient
	locker synclock.Locker
	bus    reload.Bus
	log    *zap.Logger

	syncWindow time.Duration
	timeout    time.Duration
}

func New(
	repo Repository,
	client CalendarClient,
	locker synclock.Locker,
	bus reload.Bus,
	log *zap.Logger,
	syncWindowDays int,
	timeout time.Duration,
) *Bridge {
	return &Bridge{
		repo:       repo,
		client:     client,
		locker:     locker,
		bus:        bus,
		log:        log,
		syncWindow: time.Duration(syncWindowDays) * 24 * time.Hour,
		timeout:    timeout,
	}
}

// --------------------------------------------------
// Diagnose
// --------------------------------------------------

// Diagnose is read-only. A calendar that cannot be reached within the
// timeout reports connected=false instead of blocking the caller.
func (b *Bridge) Diagnose(ctx context.Context, providerID uint) (*DiagnoseResult, error) {
	conn, err := b.repo.GetConnection(ctx, providerID)
	if err != nil {
		return nil, err
	}

	connected := conn != nil && conn.Active
	if connected {
		pingCtx, cancel := context.WithTimeout(ctx, b.timeout)
		if err := b.client.Ping(pingCtx, conn); err != nil {
			connected = false
		}
		cancel()
	}

	blocks, err := b.repo.ListBlocks(ctx, providerID)
	if err != nil {
		return nil, err
	}

	result := &DiagnoseResult{
		Connected:      connected,
		TotalBlocks:    len(blocks),
		ExternalBlocks: []models.AvailabilityBlock{},
	}
	for _, blk := range blocks {
		if blk.ExternalTagged() {
			result.ExternalTagged++
			result.ExternalBlocks = append(result.ExternalBlocks, blk)
		}
	}
	result.InternalOnly = result.TotalBlocks - result.ExternalTagged

	return result, nil
}

// --------------------------------------------------
// Force Sync
// --------------------------------------------------

// ForceSync reconciles bridge-owned blocks with the upstream calendar.
// No create or delete happens unless the full event fetch succeeded.
// Running it twice against unchanged upstream data yields created=0,
// deleted=0.
func (b *Bridge) ForceSync(ctx context.Context, providerID uint) (*SyncResult, error) {
	conn, err := b.repo.GetConnection(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if conn == nil || !conn.Active {
		return &SyncResult{Success: false, Reason: "calendar_not_connected"}, nil
	}

	release, err := b.locker.Acquire(ctx, providerID)
	if err != nil {
		if err == synclock.ErrLocked {
			return nil, httperr.ErrBusiness("sync_in_progress")
		}
		return nil, err
	}
	defer release()

	fetchCtx, cancel := context.WithTimeout(ctx, b.timeout)
	events, err := b.client.ListUpcomingEvents(fetchCtx, conn, b.syncWindow)
	cancel()
	if err != nil {
		return nil, httperr.ErrExternal("list_events", err)
	}

	blocks, err := b.repo.ListBlocks(ctx, providerID)
	if err != nil {
		return nil, err
	}

	byExternalID := map[string]bool{}
	var externalBlocks []models.AvailabilityBlock
	for _, blk := range blocks {
		if blk.ExternalTagged() {
			byExternalID[*blk.ExternalEventID] = true
			externalBlocks = append(externalBlocks, blk)
		}
	}

	result := &SyncResult{Success: true}
	result.Diagnostics.TotalFromCalendar = len(events)

	fetched := map[string]bool{}
	var toImport []CalendarEvent

	for _, ev := range events {
		fetched[ev.ID] = true

		switch {
		case ev.Transparent:
			result.Diagnostics.TransparentExcluded++
		case isOwnEvent(ev.ID):
			result.Diagnostics.OwnEventsExcluded++
		case byExternalID[ev.ID]:
			result.Diagnostics.ExistingBlocksExcluded++
		default:
			toImport = append(toImport, ev)
		}
	}
	result.Diagnostics.AfterFiltering = len(toImport)

	for _, ev := range toImport {
		blk := blockFromEvent(providerID, ev)
		if err := b.repo.CreateBlock(ctx, blk); err != nil {
			b.log.Error("sync: create block failed",
				zap.Uint("provider_id", providerID),
				zap.String("external_event_id", ev.ID),
				zap.Error(err))
			continue
		}
		result.Created++
	}

	// Bridge-owned blocks whose upstream event disappeared. Own mirrored
	// events are invisible to the fetch filter above but still present in
	// the fetched set, so they never trigger deletion of foreign rows.
	var staleIDs []uint
	for _, blk := range externalBlocks {
		if !fetched[*blk.ExternalEventID] {
			staleIDs = append(staleIDs, blk.ID)
		}
	}
	if len(staleIDs) > 0 {
		n, err := b.repo.DeleteBlocksByID(ctx, providerID, staleIDs)
		if err != nil {
			return nil, err
		}
		result.Deleted = n
	}

	if result.Created > 0 || result.Deleted > 0 {
		if err := b.bus.Publish(ctx, providerID); err != nil {
			b.log.Warn("sync: reload publish failed", zap.Error(err))
		}
	}

	return result, nil
}

// --------------------------------------------------
// Clean Duplicates
// --------------------------------------------------

// CleanDuplicates removes bridge-owned blocks sharing an external id or an
// identical span, keeping the oldest of each group. Idempotent: a second
// consecutive run removes nothing.
func (b *Bridge) CleanDuplicates(ctx context.Context, providerID uint) (*DedupResult, error) {
	release, err := b.locker.Acquire(ctx, providerID)
	if err != nil {
		if err == synclock.ErrLocked {
			return nil, httperr.ErrBusiness("sync_in_progress")
		}
		return nil, err
	}
	defer release()

	blocks, err := b.repo.ListBlocks(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var tagged []models.AvailabilityBlock
	for _, blk := range blocks {
		if blk.ExternalTagged() {
			tagged = append(tagged, blk)
		}
	}

	// Oldest row first inside every group, so the keeper is stable across
	// runs.
	sort.Slice(tagged, func(i, j int) bool {
		if !tagged[i].CreatedAt.Equal(tagged[j].CreatedAt) {
			return tagged[i].CreatedAt.Before(tagged[j].CreatedAt)
		}
		return tagged[i].ID < tagged[j].ID
	})

	seenExternal := map[string]bool{}
	seenSpan := map[string]bool{}
	var dupIDs []uint

	for _, blk := range tagged {
		extID := *blk.ExternalEventID
		span := spanKey(&blk)

		if seenExternal[extID] || seenSpan[span] {
			dupIDs = append(dupIDs, blk.ID)
			continue
		}
		seenExternal[extID] = true
		seenSpan[span] = true
	}

	result := &DedupResult{
		TotalBlocks:  len(tagged),
		UniqueBlocks: len(tagged) - len(dupIDs),
	}

	if len(dupIDs) > 0 {
		n, err := b.repo.DeleteBlocksByID(ctx, providerID, dupIDs)
		if err != nil {
			return nil, err
		}
		result.DuplicatesRemoved = n

		if err := b.bus.Publish(ctx, providerID); err != nil {
			b.log.Warn("dedup: reload publish failed", zap.Error(err))
		}
	}
	result.RemainingBlocks = result.TotalBlocks - result.DuplicatesRemoved

	if result.DuplicatesRemoved == 0 {
		result.Message = "no duplicate external blocks found"
	} else {
		result.Message = fmt.Sprintf("removed %d duplicate external blocks", result.DuplicatesRemoved)
	}

	return result, nil
}

// --------------------------------------------------
// Outbound Mirror
// --------------------------------------------------

// Mirror pushes a locally created block onto the linked calendar so the
// provider's own calendar shows the busy period. Best-effort: the caller's
// write already committed, a failure here is logged and dropped. The block
// itself stays provider-owned; only bridge-created rows carry an external
// tag.
func (b *Bridge) Mirror(ctx context.Context, blk *models.AvailabilityBlock) error {
	conn, err := b.repo.GetConnection(ctx, blk.ProviderID)
	if err != nil {
		return err
	}
	if conn == nil || !conn.Active {
		return nil
	}

	start, end, err := blockSpanTimes(blk)
	if err != nil {
		return err
	}

	ev := CalendarEvent{
		ID:          fmt.Sprintf("%s-%s", mirroredBlockPrefix, uuid.NewString()),
		Title:       blk.Title,
		Description: blk.Description,
		Start:       start,
		End:         end,
		AllDay:      blk.BlockType == models.BlockTypeFullDay,
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.client.CreateEvent(callCtx, conn, ev); err != nil {
		return httperr.ErrExternal("create_event", err)
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func isOwnEvent(id string) bool {
	return strings.HasPrefix(id, mirroredBlockPrefix+"-") ||
		strings.HasPrefix(id, mirroredAppointmentPrefix+"-")
}

func spanKey(b *models.AvailabilityBlock) string {
	return strings.Join([]string{
		b.BlockType, b.StartDate, b.EndDate, b.StartTime, b.EndTime,
	}, "|")
}

// blockFromEvent mirrors one upstream event into a bridge-owned block.
// Timed events become a weekly_range over their local clock window, whole
// day events a full_day span.
func blockFromEvent(providerID uint, ev CalendarEvent) *models.AvailabilityBlock {
	title := ev.Title
	if title == "" {
		title = "Busy"
	}

	extID := ev.ID
	blk := &models.AvailabilityBlock{
		ProviderID:      providerID,
		Title:           title,
		Description:     "Synced from external calendar",
		StartDate:       ev.Start.Format(availability.DateLayout),
		ExternalEventID: &extID,
	}

	if ev.AllDay {
		blk.BlockType = models.BlockTypeFullDay
		// All-day events end on the morning after their last day.
		blk.EndDate = ev.End.AddDate(0, 0, -1).Format(availability.DateLayout)
		if blk.EndDate < blk.StartDate {
			blk.EndDate = blk.StartDate
		}
		return blk
	}

	blk.BlockType = models.BlockTypeWeeklyRange
	blk.EndDate = ev.End.Format(availability.DateLayout)
	blk.StartTime = ev.Start.Format("15:04")
	blk.EndTime = ev.End.Format("15:04")

	// Events crossing midnight lose sub-day precision; block the clock
	// window across the whole span rather than under-blocking.
	if blk.EndTime <= blk.StartTime {
		blk.BlockType = models.BlockTypeFullDay
		blk.StartTime = ""
		blk.EndTime = ""
	}
	return blk
}

func blockSpanTimes(b *models.AvailabilityBlock) (time.Time, time.Time, error) {
	startDay, err := time.Parse(availability.DateLayout, b.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDay, err := time.Parse(availability.DateLayout, b.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if b.BlockType == models.BlockTypeWeeklyRange {
		startClock, err := time.Parse("15:04", b.StartTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endClock, err := time.Parse("15:04", b.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start := startDay.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
		end := endDay.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
		return start, end, nil
	}

	return startDay, endDay.AddDate(0, 0, 1), nil
}
