package draft

import "github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"

// Restricted computes the champions unavailable for the given game number
// from the series' accumulated records. In normal mode the tracker is inert.
// In fearless mode only prior picks carry forward; full fearless carries both
// picks and bans.
func Restricted(records []domain.UnavailableChampion, mode domain.DraftMode, gameNumber int) map[string]bool {
	set := make(map[string]bool)
	if mode == domain.DraftModeNormal {
		return set
	}
	for _, rec := range records {
		if rec.FromGame >= gameNumber {
			continue
		}
		if mode == domain.DraftModeFearless && rec.Reason == domain.ReasonBanned {
			continue
		}
		set[rec.ChampionID] = true
	}
	return set
}

// CollectUnavailable folds a completed game's slots into unavailable-champion
// records. Sentinel slot values (skipped bans, never-filled slots) produce no
// records.
func CollectUnavailable(g *Game) []domain.UnavailableChampion {
	var records []domain.UnavailableChampion
	add := func(ids []string, side domain.Side, reason domain.UnavailableReason) {
		for _, id := range ids {
			if domain.IsSentinel(id) {
				continue
			}
			records = append(records, domain.UnavailableChampion{
				ChampionID: id,
				FromGame:   g.GameNumber,
				Side:       side,
				Reason:     reason,
			})
		}
	}
	add(g.BluePicks, domain.SideBlue, domain.ReasonPicked)
	add(g.RedPicks, domain.SideRed, domain.ReasonPicked)
	add(g.BlueBans, domain.SideBlue, domain.ReasonBanned)
	add(g.RedBans, domain.SideRed, domain.ReasonBanned)
	return records
}
