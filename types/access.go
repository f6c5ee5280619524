package types

// Accessibility is the visibility level of a member
type Accessibility int

// Enumeration of accessibility levels from most to least visible
const (
	Public Accessibility = iota
	Protected
	Module
	Private
	Hidden // visible to the engine only
)

func (a Accessibility) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Module:
		return "internal"
	case Private:
		return "private"
	case Hidden:
		return "hidden"
	}

	return "unknown"
}

// ParseAccessibility converts an accessibility keyword to an Accessibility
func ParseAccessibility(s string) (Accessibility, bool) {
	switch s {
	case "", "public":
		return Public, true
	case "protected":
		return Protected, true
	case "internal", "module":
		return Module, true
	case "private":
		return Private, true
	case "hidden":
		return Hidden, true
	}

	return Public, false
}

// Site describes where a member access is made from
type Site int

// Enumeration of access sites
const (
	SiteGlobal        Site = iota // global script or free function
	SiteMethodBody                // the body of a method of the containing type
	SiteMethodClosure             // code nested in a method, eg. a lambda
)

// CheckMemberAccess decides whether the member called name is visible on a
// value whose type is declared, from code inside containing (which may be
// nil).  It returns the type that defines the member as seen from the access
// site or nil if the member does not exist.  An invisible member is an
// IllegalMemberAccessError.
func CheckMemberAccess(declared *ClassType, name string, containing *ClassType, site Site, static bool) (*ClassType, error) {
	// code inside a method body sees the private members of its own type even
	// on a receiver of a derived type
	if containing != nil && site == SiteMethodBody && declared.IsDerivedFrom(containing, true) {
		own := containing.FindMembers(name, static)
		if len(own) == 0 {
			return nil, nil
		}

		if own[0].Access == Private && own[0].Owner == containing {
			return containing, nil
		}
	}

	found := declared.FindMembers(name, static)
	if len(found) == 0 {
		return nil, nil
	}

	member := found[0]
	defining := member.Owner

	switch member.Access {
	case Hidden:
		return nil, nil
	case Private:
		if err := checkInheritance(declared, defining, member, containing, site, true); err != nil {
			return nil, err
		}
	case Protected:
		if err := checkInheritance(declared, defining, member, containing, site, false); err != nil {
			return nil, err
		}
	case Module:
		if containing == nil || defining.Module == "" || containing.Module != defining.Module {
			return nil, newIllegalMemberAccess(declared, member, "it is only visible inside module `"+defining.Module+"`")
		}
	}

	return defining, nil
}

// checkInheritance verifies that code inside containing may see a private or
// protected member defined by defining
func checkInheritance(declared, defining *ClassType, member *Member, containing *ClassType, site Site, private bool) error {
	if site == SiteGlobal || containing == nil {
		return newIllegalMemberAccess(declared, member, "it is not accessible outside of its class")
	}

	if private && containing != defining {
		return newIllegalMemberAccess(declared, member, "it is private to `"+defining.Name+"`")
	}

	if !containing.IsDerivedFrom(defining, true) {
		// a derived type that redeclares the member makes it visible to its
		// ancestors' methods
		if !(defining.IsDerivedFrom(containing, false) && len(containing.FindMembers(member.Name, member.Static)) > 0) {
			return newIllegalMemberAccess(declared, member, "`"+containing.Name+"` does not derive from `"+defining.Name+"`")
		}
	}

	return nil
}
