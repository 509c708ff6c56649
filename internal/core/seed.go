package core

import (
	"context"
	"time"
)

// SeedDemo populates the store with the demo dataset when all three
// collections are empty. It reports whether seeding took place.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	if len(s.store.ListCoachees()) > 0 || len(s.store.ListSessions()) > 0 || len(s.store.ListSources()) > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	daysAgo := func(days int) time.Time {
		return now.AddDate(0, 0, -days).Truncate(24 * time.Hour)
	}

	_, err := s.run(ctx, "seed_demo", "", func(tx Transaction) error {
		linkedin, err := tx.CreateSource(Source{Name: "LinkedIn Referral", Country: "India", Website: "https://www.linkedin.com"})
		if err != nil {
			return err
		}
		hrPartner, err := tx.CreateSource(Source{Name: "Corporate HR Partner", Country: "India", Website: "https://example.com/hr-partner"})
		if err != nil {
			return err
		}
		wordOfMouth, err := tx.CreateSource(Source{Name: "Word of Mouth", Country: "India"})
		if err != nil {
			return err
		}

		aarav, err := tx.CreateCoachee(Coachee{
			Type:         CoacheeIndividual,
			FirstName:    "Aarav",
			SecondName:   "Sharma",
			AgeGroup:     "30-40",
			Sex:          "Male",
			Email:        "aarav.sharma@example.com",
			Phone:        "+91-9876543210",
			LinkedIn:     "https://linkedin.com/in/aaravsharma",
			Occupation:   "Employed",
			Organisation: "TechNova Solutions",
			City:         "Bengaluru",
			Country:      "India",
			SourceID:     &linkedin.ID,
		})
		if err != nil {
			return err
		}
		priya, err := tx.CreateCoachee(Coachee{
			Type:         CoacheeIndividual,
			FirstName:    "Priya",
			SecondName:   "Nair",
			AgeGroup:     "20-30",
			Sex:          "Female",
			Email:        "priya.nair@example.com",
			Phone:        "+91-9123456780",
			LinkedIn:     "https://linkedin.com/in/priyanair",
			Occupation:   "Self-employed",
			Organisation: "Nair Consulting",
			City:         "Mumbai",
			Country:      "India",
			SourceID:     &wordOfMouth.ID,
		})
		if err != nil {
			return err
		}
		productTeam, err := tx.CreateCoachee(Coachee{
			Type:            CoacheeTeam,
			GroupTeamName:   "Product Leadership Team",
			NumParticipants: 8,
			Members:         []string{"VP Product", "3 Product Managers", "4 Senior PMs"},
			Organisation:    "FinEdge Corp",
			City:            "Pune",
			Country:         "India",
			SourceID:        &hrPartner.ID,
		})
		if err != nil {
			return err
		}
		managersCohort, err := tx.CreateCoachee(Coachee{
			Type:            CoacheeGroup,
			GroupTeamName:   "Emerging Managers Cohort",
			NumParticipants: 12,
			Members:         []string{"Cross-functional first-time managers"},
			Organisation:    "TechNova Solutions",
			City:            "Bengaluru",
			Country:         "India",
			SourceID:        &hrPartner.ID,
		})
		if err != nil {
			return err
		}

		sessions := []Session{
			{
				CoacheeID:   aarav.ID,
				CoacheeType: aarav.Type,
				SessionDate: daysAgo(21),
				Duration:    1.5,
				Themes:      []string{"Career", "Communication"},
				PaymentType: PaymentPaid,
				Notes:       "Defined growth roadmap and stakeholder communication plan.",
			},
			{
				CoacheeID:   aarav.ID,
				CoacheeType: aarav.Type,
				SessionDate: daysAgo(10),
				Duration:    1.0,
				Themes:      []string{"Productivity", "Habits"},
				PaymentType: PaymentPaid,
				Notes:       "Implemented weekly planning and focus rituals.",
			},
			{
				CoacheeID:   priya.ID,
				CoacheeType: priya.Type,
				SessionDate: daysAgo(18),
				Duration:    1.0,
				Themes:      []string{"Well-being", "Relationships"},
				PaymentType: PaymentPeer,
				Notes:       "Worked on boundaries and burnout prevention.",
			},
			{
				CoacheeID:   productTeam.ID,
				CoacheeType: productTeam.Type,
				SessionDate: daysAgo(15),
				Duration:    2.0,
				Themes:      []string{"Communication", "Other Professional"},
				PaymentType: PaymentPaid,
				Notes:       "Team alignment workshop focused on decision clarity.",
			},
			{
				CoacheeID:   managersCohort.ID,
				CoacheeType: managersCohort.Type,
				SessionDate: daysAgo(7),
				Duration:    1.5,
				Themes:      []string{"Leadership", "Career"},
				PaymentType: PaymentProBono,
				Notes:       "Group coaching on first-90-days leadership transitions.",
			},
		}
		for _, session := range sessions {
			if _, err := tx.CreateSession(session); err != nil {
				return err
			}
		}
		return nil
	}, nil)
	if err != nil {
		return false, err
	}
	return true, nil
}
