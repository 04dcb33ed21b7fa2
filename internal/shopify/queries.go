package shopify

// Field selections shared by the list and node queries

const productFields = `
fragment ProductFields on Product {
  id
  title
  descriptionHtml
  handle
  status
  productType
  vendor
  tags
  seo {
    title
    description
  }
  images(first: 50) {
    nodes {
      id
      url
      altText
    }
  }
  variants(first: 250) {
    nodes {
      id
      title
      sku
      barcode
      price
      compareAtPrice
      inventoryQuantity
      inventoryItem {
        id
      }
      selectedOptions {
        name
        value
      }
    }
  }
  metafields(first: 50) {
    nodes {
      namespace
      key
      value
      type
    }
  }
}
`

const addressFields = `
fragment AddressFields on MailingAddress {
  id
  firstName
  lastName
  company
  address1
  address2
  city
  province
  country
  zip
  phone
}
`

const customerFields = `
fragment CustomerFields on Customer {
  id
  email
  firstName
  lastName
  phone
  note
  tags
  numberOfOrders
  amountSpent {
    amount
    currencyCode
  }
  defaultAddress {
    id
  }
  addresses(first: 20) {
    ...AddressFields
  }
  metafields(first: 50) {
    nodes {
      namespace
      key
      value
      type
    }
  }
}
` + addressFields

const lineItemFields = `
fragment LineItemFields on LineItem {
  title
  quantity
  sku
  variant {
    id
  }
  product {
    id
  }
  originalUnitPriceSet {
    shopMoney {
      amount
      currencyCode
    }
  }
}
`

const orderFields = `
fragment OrderFields on Order {
  id
  name
  email
  note
  tags
  createdAt
  displayFinancialStatus
  displayFulfillmentStatus
  currencyCode
  discountCodes
  customAttributes {
    key
    value
  }
  totalPriceSet {
    shopMoney {
      amount
    }
  }
  subtotalPriceSet {
    shopMoney {
      amount
    }
  }
  totalTaxSet {
    shopMoney {
      amount
    }
  }
  totalShippingPriceSet {
    shopMoney {
      amount
    }
  }
  totalDiscountsSet {
    shopMoney {
      amount
    }
  }
  shippingAddress {
    ...AddressFields
  }
  billingAddress {
    ...AddressFields
  }
  lineItems(first: 250) {
    nodes {
      ...LineItemFields
    }
  }
}
` + addressFields + lineItemFields

const draftOrderFields = `
fragment DraftOrderFields on DraftOrder {
  id
  name
  email
  note2
  tags
  createdAt
  currencyCode
  customAttributes {
    key
    value
  }
  totalPriceSet {
    shopMoney {
      amount
    }
  }
  subtotalPriceSet {
    shopMoney {
      amount
    }
  }
  totalTaxSet {
    shopMoney {
      amount
    }
  }
  totalDiscountsSet {
    shopMoney {
      amount
    }
  }
  appliedDiscount {
    title
    value
    valueType
  }
  shippingLine {
    title
    originalPriceSet {
      shopMoney {
        amount
      }
    }
  }
  shippingAddress {
    ...AddressFields
  }
  billingAddress {
    ...AddressFields
  }
  lineItems(first: 250) {
    nodes {
      title
      quantity
      sku
      variant {
        id
      }
      product {
        id
      }
      originalUnitPriceSet {
        shopMoney {
          amount
          currencyCode
        }
      }
    }
  }
}
` + addressFields

const collectionFields = `
fragment CollectionFields on Collection {
  id
  title
  handle
  descriptionHtml
  image {
    url
    altText
  }
  seo {
    title
    description
  }
  products(first: 250) {
    nodes {
      id
    }
  }
}
`

const discountFields = `
fragment DiscountFields on DiscountCodeNode {
  id
  codeDiscount {
    __typename
    ... on DiscountCodeBasic {
      title
      startsAt
      endsAt
      usageLimit
      asyncUsageCount
      codes(first: 1) {
        nodes {
          code
        }
      }
      customerGets {
        value {
          __typename
          ... on DiscountPercentage {
            percentage
          }
          ... on DiscountAmount {
            amount {
              amount
            }
            appliesOnEachItem
          }
        }
        items {
          __typename
          ... on DiscountProducts {
            products(first: 250) {
              nodes {
                id
              }
            }
          }
          ... on DiscountCollections {
            collections(first: 250) {
              nodes {
                id
              }
            }
          }
        }
      }
      minimumRequirement {
        __typename
        ... on DiscountMinimumSubtotal {
          greaterThanOrEqualToSubtotal {
            amount
          }
        }
      }
    }
    ... on DiscountCodeFreeShipping {
      title
      startsAt
      endsAt
      usageLimit
      asyncUsageCount
      codes(first: 1) {
        nodes {
          code
        }
      }
    }
  }
}
`

const pageFields = `
fragment PageFields on Page {
  id
  title
  handle
  body
  isPublished
  publishedAt
  createdAt
  updatedAt
}
`

const articleFields = `
fragment ArticleFields on Article {
  id
  title
  handle
  body
  summary
  author {
    name
  }
  tags
  isPublished
  publishedAt
  createdAt
  updatedAt
  blog {
    id
    title
  }
}
`

// ProductsQuery pages through products with variants
const ProductsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...ProductFields
    }
  }
}
` + productFields

// CustomersQuery pages through customers with addresses
const CustomersQuery = `
query getCustomers($first: Int!, $after: String) {
  customers(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...CustomerFields
    }
  }
}
` + customerFields

// OrdersQuery pages through placed orders
const OrdersQuery = `
query getOrders($first: Int!, $after: String) {
  orders(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...OrderFields
    }
  }
}
` + orderFields

// DraftOrdersQuery pages through draft orders. Completed drafts are
// returned by OrdersQuery, so callers filter with status:open.
const DraftOrdersQuery = `
query getDraftOrders($first: Int!, $after: String, $query: String) {
  draftOrders(first: $first, after: $after, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...DraftOrderFields
    }
  }
}
` + draftOrderFields

// CollectionsQuery pages through collections with their product ids
const CollectionsQuery = `
query getCollections($first: Int!, $after: String) {
  collections(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...CollectionFields
    }
  }
}
` + collectionFields

// DiscountsQuery pages through code discounts
const DiscountsQuery = `
query getDiscounts($first: Int!, $after: String) {
  codeDiscountNodes(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...DiscountFields
    }
  }
}
` + discountFields

// PagesQuery pages through online store pages
const PagesQuery = `
query getPages($first: Int!, $after: String) {
  pages(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...PageFields
    }
  }
}
` + pageFields

// ArticlesQuery pages through blog articles of every blog
const ArticlesQuery = `
query getArticles($first: Int!, $after: String) {
  articles(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ...ArticleFields
    }
  }
}
` + articleFields

// BlogsQuery lists blogs so articles can be filed by title
const BlogsQuery = `
query getBlogs {
  blogs(first: 250) {
    nodes {
      id
      title
    }
  }
}
`

// VariantInventoryItemQuery resolves the inventory item of a variant
const VariantInventoryItemQuery = `
query getVariantInventoryItem($id: ID!) {
  productVariant(id: $id) {
    id
    inventoryItem {
      id
    }
  }
}
`

// nodeQuery selects one record by GID through the given fragment
func nodeQuery(fragmentName, fragment string) string {
	return `
query getNode($id: ID!) {
  node(id: $id) {
    ...` + fragmentName + `
  }
}
` + fragment
}
