// Package fixtures provides marketplace product pages for scraper tests.
package fixtures

// AmazonProduct is a trimmed Amazon detail page.
func AmazonProduct() string {
	return `<!DOCTYPE html>
<html lang="en-us">
<head>
<title>Amazon.com: Gooseneck Kettle : Home &amp; Kitchen</title>
<meta name="description" content="Buy Gooseneck Kettle online.">
</head>
<body>
<div id="dp">
  <span id="productTitle" class="a-size-large">
      Gooseneck Electric Kettle, 1L Stainless Steel Pour Over Kettle with Temperature Control
  </span>
  <div id="corePrice_feature_div">
    <span class="a-price"><span class="a-offscreen">$49.99</span><span aria-hidden="true">$49<sup>99</sup></span></span>
  </div>
  <div id="feature-bullets">
    <ul>
      <li><span class="a-list-item"> Precise gooseneck spout for controlled pour over brewing </span></li>
      <li><span class="a-list-item"> Five temperature presets &amp; a 60 minute hold mode </span></li>
    </ul>
  </div>
  <div id="imgTagWrapperId">
    <img id="landingImage" src="https://m.media-amazon.com/images/I/kettle._SX300_.jpg"
         data-old-hires="https://m.media-amazon.com/images/I/kettle._SL1500_.jpg" alt="kettle">
  </div>
</div>
</body>
</html>`
}

// EtsyListing is a trimmed Etsy listing page with Open Graph tags.
func EtsyListing() string {
	return `<!DOCTYPE html>
<html>
<head>
<title>Handmade Ceramic Mug - Etsy</title>
<meta property="og:title" content="Handmade Ceramic Mug, Speckled Stoneware Coffee Cup">
<meta property="og:image" content="https://i.etsystatic.com/1/r/il/mug_fullxfull.jpg">
<meta property="og:description" content="Wheel thrown stoneware mug.">
</head>
<body>
<h1 data-buy-box-listing-title="true">Handmade Ceramic Mug, Speckled Stoneware Coffee Cup</h1>
<div data-buy-box-region="price"><p class="wt-text-title-larger">Price: <span>€28,50</span></p></div>
<div data-id="description-text">
  <p>Each mug is thrown by hand on the wheel.<br>Holds about 12 oz.</p>
  <p>Dishwasher &amp; microwave safe.</p>
</div>
<ul class="carousel-pane-list">
  <li><img data-src-zoom-image="https://i.etsystatic.com/1/r/il/mug_1.jpg" src="/img/placeholder.gif"></li>
  <li><img data-src-zoom-image="https://i.etsystatic.com/1/r/il/mug_2.jpg" src="/img/placeholder.gif"></li>
</ul>
</body>
</html>`
}

// ShopifyProduct is a storefront page whose data sits in JSON-LD and meta tags.
func ShopifyProduct() string {
	return `<!DOCTYPE html>
<html>
<head>
<title>Linen Apron | Field Goods</title>
<meta property="og:title" content="Linen Apron">
<meta property="og:image" content="//fieldgoods.myshopify.com/cdn/shop/products/apron.jpg">
<meta name="description" content="Stonewashed linen apron with two deep pockets.">
<script type="application/ld+json">
{"@type": "Product", "name": "Linen Apron", "offers": {"price": "1,299.00", "priceCurrency": "USD"}}
</script>
</head>
<body><main><h1 class="product__title">Linen Apron</h1></main></body>
</html>`
}

// EbayItem is an eBay item page without any description block.
func EbayItem() string {
	return `<!DOCTYPE html>
<html>
<head><title>Vintage Film Camera | eBay</title></head>
<body>
<h1 class="x-item-title__mainTitle"><span class="ux-textspans ux-textspans--BOLD">Vintage 35mm Film Camera Tested Working</span></h1>
<div class="x-price-primary"><span class="ux-textspans">US $120.00</span></div>
<div class="ux-image-carousel-item"><img src="https://i.ebayimg.com/images/g/cam/s-l500.jpg"></div>
</body>
</html>`
}

// EmptyPage has no product data at all.
func EmptyPage() string {
	return `<!DOCTYPE html><html><head></head><body><div id="app"></div></body></html>`
}
