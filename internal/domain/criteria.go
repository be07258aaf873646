package domain

import (
	"strings"
	"time"
)

// NewClientWindow is how far back the new_clients criterion reaches.
const NewClientWindow = 3 * 24 * time.Hour

const cityAnyPrefix = "city_any:"

// Criteria is the typed form of a campaign's selection_criteria string.
// Every field is conjoined (AND); there is no OR or negation support. The
// base constraint role = Client is implicit and always applied by the store.
type Criteria struct {
	// NewClients restricts to users whose inscription date falls within
	// NewClientWindow of the query time.
	NewClients bool

	// ContractTypes holds the contract kinds named by the criteria string,
	// in canonical order (auto, home, health) regardless of token order.
	ContractTypes []ContractType

	// Cities restricts to users whose city is in this set. Exact,
	// case-sensitive matching; values are trimmed of whitespace.
	Cities []string
}

// ParseCriteria decodes a comma-separated criteria string such as
//
//	"new_clients,auto_contract,city_any:Tunis,Sfax"
//
// into a Criteria value. A city_any: token opens a city list that absorbs
// the following tokens until a recognized keyword appears, since the city
// sublist shares the outer string's comma separator. Unrecognized tokens
// outside a city list are silently ignored.
func ParseCriteria(s string) Criteria {
	var (
		c      Criteria
		auto   bool
		home   bool
		health bool
		inCity bool
	)

	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if strings.HasPrefix(tok, cityAnyPrefix) {
			inCity = true
			if city := strings.TrimSpace(strings.TrimPrefix(tok, cityAnyPrefix)); city != "" {
				c.Cities = append(c.Cities, city)
			}
			continue
		}

		switch tok {
		case "new_clients":
			c.NewClients = true
			inCity = false
		case "auto_contract":
			auto = true
			inCity = false
		case "home_contract":
			home = true
			inCity = false
		case "health_contract":
			health = true
			inCity = false
		default:
			if inCity {
				c.Cities = append(c.Cities, tok)
			}
			// Unknown token, ignore.
		}
	}

	if auto {
		c.ContractTypes = append(c.ContractTypes, ContractAuto)
	}
	if home {
		c.ContractTypes = append(c.ContractTypes, ContractHome)
	}
	if health {
		c.ContractTypes = append(c.ContractTypes, ContractHealth)
	}

	return c
}

// String re-serializes the criteria into the persisted format. The city list
// is emitted last so it survives a round trip through ParseCriteria.
func (c Criteria) String() string {
	var tokens []string
	if c.NewClients {
		tokens = append(tokens, "new_clients")
	}
	for _, ct := range c.ContractTypes {
		switch ct {
		case ContractAuto:
			tokens = append(tokens, "auto_contract")
		case ContractHome:
			tokens = append(tokens, "home_contract")
		case ContractHealth:
			tokens = append(tokens, "health_contract")
		}
	}
	if len(c.Cities) > 0 {
		tokens = append(tokens, cityAnyPrefix+strings.Join(c.Cities, ","))
	}
	return strings.Join(tokens, ",")
}

// Empty reports whether the criteria carries no filter beyond the implicit
// role = Client constraint.
func (c Criteria) Empty() bool {
	return !c.NewClients && len(c.ContractTypes) == 0 && len(c.Cities) == 0
}
