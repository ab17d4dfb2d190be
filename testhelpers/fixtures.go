package testhelpers

// SchroederCatalogJSON is a small catalog covering every category policy
// and both customizable item kinds.
const SchroederCatalogJSON = `{
  "categories": [
    {"name": "ENVELOPE", "items": [
      {"id": "env-g30", "name": "G 30/24", "description": "3000 m3 sport envelope", "price": 15000},
      {"id": "env-g40", "name": "G 40/24", "description": "4000 m3 passenger envelope", "price": 18000}
    ]},
    {"name": "BASKET", "items": [
      {"id": "bsk-10", "name": "Basket 1.0 x 1.3", "description": "Two person basket", "price": 3000},
      {"id": "bsk-11", "name": "Basket 1.1 x 1.5", "description": "Three person basket", "price": 3500},
      {"id": "bsk-13", "name": "Basket 1.3 x 1.8", "description": "Five person basket", "price": 4200}
    ]},
    {"name": "BURNER", "items": [
      {"id": "brn-single", "name": "Single Burner Vario", "description": "", "price": 2500},
      {"id": "brn-double", "name": "Double Burner Vario", "description": "", "price": 4800},
      {"id": "brn-quad", "name": "Quad Burner Vario", "description": "", "price": 9000}
    ]},
    {"name": "BURNER FRAME", "items": [
      {"id": "frm-double", "name": "Double Frame Inox", "description": "", "price": 900},
      {"id": "frm-triple", "name": "Triple Frame Inox", "description": "", "price": 1100},
      {"id": "frm-quad", "name": "Quadruple Frame Inox", "description": "", "price": 1300}
    ]},
    {"name": "ARTWORK", "items": [
      {"id": "art-logo", "name": "Artwork Logo Panel", "description": "Customer logo on two gores", "price": 0}
    ]},
    {"name": "FABRIC", "items": [
      {"id": "fab-hyperlast", "name": "Hyperlast Fabric Upgrade", "description": "", "price": 1200}
    ]},
    {"name": "ACCESSORIES", "items": [
      {"id": "acc-tank", "name": "Fuel Tank 40L", "description": "", "price": 600},
      {"id": "acc-fan", "name": "Inflation Fan", "description": "", "price": 1500}
    ]}
  ]
}`

// PashaCatalogJSON is a minimal second vendor.
const PashaCatalogJSON = `{
  "categories": [
    {"name": "ENVELOPE", "items": [
      {"id": "p-env-2200", "name": "Pasha 2200", "description": "", "price": 12000}
    ]},
    {"name": "BASKET", "items": [
      {"id": "p-bsk-s", "name": "Pasha Basket S", "description": "", "price": 2000}
    ]},
    {"name": "BURNER", "items": [
      {"id": "p-brn-double", "name": "Pasha Double Burner", "description": "", "price": 4000}
    ]},
    {"name": "ACCESSORIES", "items": [
      {"id": "p-tank", "name": "Pasha Tank", "description": "", "price": 500}
    ]}
  ]
}`

// RulesJSON maps envelopes to compatible baskets and burners. Vendor keys
// are deliberately mixed case.
const RulesJSON = `{
  "Schroeder": {
    "G 30/24": {
      "baskets": ["Basket 1.0 x 1.3", "Basket 1.1 x 1.5"],
      "burners": ["Single Burner Vario", "Double Burner Vario"]
    },
    "G 40/24": {
      "baskets": ["Basket 1.3 x 1.8"],
      "burners": ["Double Burner Vario", "Quad Burner Vario"]
    }
  },
  "pasha": {
    "Pasha 2200": {
      "baskets": ["Pasha Basket S"],
      "burners": ["Pasha Double Burner"]
    }
  }
}`

// KitsYAML holds one kit per vendor. The Schroeder kit names one item that
// is not in the catalog.
const KitsYAML = `schroeder:
  - id: sport-30
    name: Sport 30
    items:
      - {category: ENVELOPE, item: "G 30/24"}
      - {category: BASKET, item: "Basket 1.0 x 1.3"}
      - {category: BURNER, item: "Single Burner Vario"}
      - {category: ACCESSORIES, item: "Discontinued Tank"}
pasha:
  - id: pasha-starter
    name: Pasha Starter
    items:
      - {category: ENVELOPE, item: "Pasha 2200"}
      - {category: BASKET, item: "Pasha Basket S"}
      - {category: BURNER, item: "Pasha Double Burner"}
`
