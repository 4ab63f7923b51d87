package gmaps

import "fmt"

// Card selectors, most specific first.
const cardSelector = `div.Nv2PK, [data-result-index], .lI9IFe, .bfdHYd`

var scrollResultsJS = `
(function() {
	var panel = document.querySelector('[role="feed"]') ||
	            document.querySelector('[role="main"] .m6QErb') ||
	            document.querySelector('.siAUzd') ||
	            document.querySelector('[role="main"]');
	if (panel) {
		panel.scrollTop = panel.scrollHeight;
	} else {
		window.scrollBy(0, 1000);
	}
	return true;
})()
`

var altScrollJS = `
(function() {
	window.scrollTo(0, document.body.scrollHeight);
	var containers = document.querySelectorAll('[role="main"], [role="feed"], .m6QErb, .siAUzd, .TFQHme');
	for (var i = 0; i < containers.length; i++) {
		containers[i].scrollTop = containers[i].scrollHeight;
	}
	return true;
})()
`

var countCardsJS = fmt.Sprintf(`document.querySelectorAll('%s').length`, cardSelector)

var endOfListJS = `
(function() {
	var text = document.body ? document.body.innerText : '';
	return text.indexOf("You've reached the end of the list") !== -1 ||
	       document.querySelector('.HlvSq') !== null;
})()
`

// Dismisses the cookie consent dialog when it appears.
var consentJS = `
(function() {
	var buttons = document.querySelectorAll('button, [role="button"]');
	for (var i = 0; i < buttons.length; i++) {
		var label = (buttons[i].innerText || buttons[i].getAttribute('aria-label') || '').toLowerCase();
		if (label === 'accept all' || label === 'reject all' || label === 'i agree') {
			buttons[i].click();
			return true;
		}
	}
	return false;
})()
`

// extractCardsJS returns one object per result card with its innerText,
// outerHTML and selector-picked candidates. Classification happens in Go.
var extractCardsJS = fmt.Sprintf(`
(function() {
	function firstText(root, selectors) {
		for (var i = 0; i < selectors.length; i++) {
			var el = root.querySelector(selectors[i]);
			if (el && el.innerText && el.innerText.trim()) return el.innerText.trim();
		}
		return '';
	}
	function allText(root, selectors) {
		var out = [];
		for (var i = 0; i < selectors.length; i++) {
			var els = root.querySelectorAll(selectors[i]);
			for (var j = 0; j < els.length; j++) {
				var t = (els[j].innerText || '').trim();
				if (t && out.indexOf(t) === -1) out.push(t);
			}
		}
		return out;
	}

	var cards = document.querySelectorAll('%s');
	var results = [];
	for (var i = 0; i < cards.length; i++) {
		var card = cards[i];
		var name = firstText(card, ['.qBF1Pd', '.fontHeadlineSmall', 'h3', '.NrDZNb', '.fontHeadlineMedium']);
		if (!name) {
			var link = card.querySelector('a[aria-label]');
			if (link) name = link.getAttribute('aria-label').trim();
		}
		results.push({
			index:       i,
			text:        card.innerText || '',
			html:        card.outerHTML || '',
			name:        name,
			rating:      firstText(card, ['.MW4etd', '.KFi5wf', '.F7nice']),
			reviewCount: firstText(card, ['.UY7F9', '.HHrUdb', '.z5jxId']),
			addresses:   allText(card, ['[data-value="Address"]', '.LrzXr', '.W4Efsd:last-child', '.rogA2c']),
			categories:  allText(card, ['.DkEaL', '.W4Efsd:first-child', '.YhemCb'])
		});
	}
	return results;
})()
`, cardSelector)

func clickCardJS(index int) string {
	return fmt.Sprintf(`
(function() {
	var cards = document.querySelectorAll('%s');
	var card = cards[%d];
	if (!card) return false;
	var target = card.querySelector('a.hfpxzc') || card.querySelector('a[href*="/maps/place"]') || card;
	target.click();
	return true;
})()
`, cardSelector, index)
}

// detailPanelJS reads website, address, email and every link from the open
// place panel.
var detailPanelJS = `
(function() {
	var result = {website: '', address: '', email: '', links: []};

	var websiteSelectors = [
		'a[data-item-id="authority"]',
		'[data-item-id="authority"] a',
		'.CsEnBe a[href^="http"]'
	];
	for (var i = 0; i < websiteSelectors.length; i++) {
		var w = document.querySelector(websiteSelectors[i]);
		if (w && w.href && w.href.indexOf('google.') === -1) {
			result.website = w.href;
			break;
		}
	}

	var addressSelectors = [
		'button[data-item-id="address"] .Io6YTe',
		'[data-item-id="address"]',
		'.rogA2c .fontBodyMedium'
	];
	for (var j = 0; j < addressSelectors.length; j++) {
		var a = document.querySelector(addressSelectors[j]);
		if (a && a.innerText) {
			var t = a.innerText.trim();
			var lower = t.toLowerCase();
			if (t && lower.indexOf('hour') === -1 && lower.indexOf('star') === -1) {
				result.address = t;
				break;
			}
		}
	}

	var mail = document.querySelector('a[href^="mailto:"]');
	if (mail) result.email = mail.getAttribute('href');

	var panel = document.querySelector('[role="main"][aria-label]') || document;
	var anchors = panel.querySelectorAll('a[href]');
	for (var k = 0; k < anchors.length; k++) {
		result.links.push({
			href: anchors[k].getAttribute('href') || '',
			text: (anchors[k].innerText || '').trim()
		});
	}
	return result;
})()
`
