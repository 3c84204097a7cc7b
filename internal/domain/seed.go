package domain

// DefaultMembers returns the team seeded on first run.
func DefaultMembers() []TeamMember {
	members := []TeamMember{
		{ID: 1, Name: "Alex Johnson", Role: "Product Manager", Team: "Team 1", Tier: TierMember},
		{ID: 2, Name: "Samantha Lee", Role: "UX Designer", Team: "Team 1", Tier: TierMember},
		{ID: 3, Name: "Marcus Chen", Role: "Developer", Team: "Team 2", Tier: TierMember},
		{ID: 4, Name: "Priya Patel", Role: "Marketing Lead", Team: "Team 2", Tier: TierMember},
		{ID: 5, Name: "James Wilson", Role: "Data Analyst", Team: "Team 3", Tier: TierMember},
		{ID: 6, Name: "Anish", Role: "Admin", Team: "Admin", Tier: TierAdmin},
		{ID: 7, Name: "Super Anish", Role: "Super Admin", Team: "Super Admin", Tier: TierSuperAdmin},
	}

	for i := range members {
		members[i].Normalize()
	}
	return members
}
